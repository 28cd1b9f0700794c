package screener

// stocks is the small dataset used across tests.
func stocks() Dataset {
	return Dataset{
		NewRecord(F("ticker", S("AAPL")), F("sector", S("Tech")), F("price", N(150))),
		NewRecord(F("ticker", S("MSFT")), F("sector", S("Tech")), F("price", N(300))),
		NewRecord(F("ticker", S("XOM")), F("sector", S("Energy")), F("price", N(90))),
	}
}

// tickers returns the ticker column of a dataset.
func tickers(ds Dataset) []string {
	res := make([]string, len(ds))
	for i, r := range ds {
		res[i] = r.Get("ticker").String()
	}
	return res
}

// find returns the first record with the given ticker.
func find(ds Dataset, ticker string) *Record {
	for _, r := range ds {
		if r.Get("ticker").String() == ticker {
			return r
		}
	}
	return nil
}
