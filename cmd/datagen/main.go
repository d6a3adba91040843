// Command datagen writes a synthetic dirty CSV fixture: five typed
// columns with injected missing cells, duplicate rows, and type errors
// in the Salary column. Seeded, so output is reproducible.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
)

var fruits = []string{"apple", "banana", "cherry", "date", "elderberry"}

func main() {
	out := flag.String("out", "synthetic_dirty_data.csv", "output file path")
	rows := flag.Int("rows", 100, "number of base rows")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	headers := []string{"float", "boolean", "string", "Age", "Salary"}
	records := make([][]string, 0, *rows+5)
	for i := 0; i < *rows; i++ {
		records = append(records, []string{
			strconv.FormatFloat(1.0+rng.Float64()*129.0, 'f', 6, 64),
			strconv.FormatBool(rng.Intn(2) == 0),
			fruits[rng.Intn(len(fruits))],
			strconv.Itoa(1 + rng.Intn(124)),
			strconv.FormatFloat(200.0+rng.Float64()*300.0, 'f', 6, 64),
		})
	}

	// ~7.5% of cells go missing.
	missing := int(0.075 * float64(*rows) * float64(len(headers)))
	for i := 0; i < missing; i++ {
		records[rng.Intn(len(records))][rng.Intn(len(headers))] = ""
	}

	// Duplicate a handful of rows.
	for i := 0; i < 5; i++ {
		src := records[rng.Intn(len(records))]
		dup := make([]string, len(src))
		copy(dup, src)
		records = append(records, dup)
	}

	// Inject type errors into the Salary column.
	badSalaries := []string{"error", "wrong", "NaN", "99.5", "invalid"}
	for _, bad := range badSalaries {
		records[rng.Intn(len(records))][4] = bad
	}

	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("create %s: %v", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		log.Fatalf("write headers: %v", err)
	}
	if err := w.WriteAll(records); err != nil {
		log.Fatalf("write rows: %v", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flush: %v", err)
	}

	fmt.Printf("Dataset generated and saved as %q (%d rows)\n", *out, len(records))
}
