// Package tabstats loads a song-tab catalog, a play log, and a request
// log from delimited files and derives filtered views and chart series
// from them.
//
// Each source is a file with a single header row. CSV, TSV, LTSV, XLSX,
// and Parquet files are accepted, the text formats optionally gzip,
// bzip2, xz, or zstd compressed. A Store owns the loaded tables; Query
// filters them; Charts aggregates the series behind the summary charts.
//
// Typical usage:
//
//	store := tabstats.NewStore()
//	report := store.Load(tabstats.Paths{
//		Tab:     "tabdb.csv",
//		Play:    "playdb.csv",
//		Request: "requestdb.csv",
//	})
//	if err := report.Err(); err != nil {
//		log.Fatal(err)
//	}
//
//	rows, err := tabstats.NewQuery(store).FilterTab(map[string]string{
//		"artist": "The Beatles",
//		"year":   "1965",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(rows.Len())
//
//	data, err := tabstats.NewCharts(store).Build(tabstats.DecadeBarChart)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, c := range data.Categories {
//		fmt.Println(c.Label, c.Count)
//	}
//
// Loading validates and normalizes each table once; every query and
// chart operation afterwards is a pure read. Store is not safe for
// concurrent use with Load.
package tabstats
