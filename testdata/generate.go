//go:build ignore

// Generates sample.parquet in the working directory, a small instrument
// master snapshot for trying out pq2csv:
//
//	go run testdata/generate.go && go run ./cmd/pq2csv sample.parquet sample.csv
package main

import (
	"log"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
)

type Instrument struct {
	Token     int64     `parquet:"token"`
	Symbol    string    `parquet:"symbol"`
	Name      *string   `parquet:"name,optional"`
	Strike    float64   `parquet:"strike"`
	LotSize   int32     `parquet:"lotsize"`
	Exchange  string    `parquet:"exch_seg"`
	Tradable  bool      `parquet:"tradable"`
	Tags      []string  `parquet:"tags,list"`
	UpdatedAt time.Time `parquet:"updated_at"`
}

func main() {
	name := func(s string) *string { return &s }
	updated := time.Date(2025, 12, 4, 8, 0, 0, 0, time.UTC)

	instruments := []Instrument{
		{Token: 3045, Symbol: "SBIN-EQ", Name: name("SBIN"), Strike: -1, LotSize: 1, Exchange: "NSE", Tradable: true, Tags: []string{"bank", "psu"}, UpdatedAt: updated},
		{Token: 2885, Symbol: "RELIANCE-EQ", Name: name("RELIANCE"), Strike: -1, LotSize: 1, Exchange: "NSE", Tradable: true, Tags: []string{"energy"}, UpdatedAt: updated},
		{Token: 35003, Symbol: "NIFTY30DEC2524000CE", Name: name("NIFTY"), Strike: 2400000, LotSize: 75, Exchange: "NFO", Tradable: true, UpdatedAt: updated},
		{Token: 99926000, Symbol: "Nifty 50", Name: nil, Strike: 0, LotSize: 1, Exchange: "NSE", Tradable: false, UpdatedAt: updated},
		{Token: 500325, Symbol: "RELIANCE", Name: name("RELIANCE INDUSTRIES LTD., MUMBAI"), Strike: -1, LotSize: 1, Exchange: "BSE", Tradable: true, UpdatedAt: updated},
		{Token: 1594, Symbol: "INFY-EQ", Name: name("INFY"), Strike: -1, LotSize: 1, Exchange: "NSE", Tradable: true, Tags: []string{"it"}, UpdatedAt: updated},
	}

	file, err := os.Create("sample.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Instrument](file)
	if _, err := writer.Write(instruments); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated sample.parquet with %d instruments", len(instruments))
}
