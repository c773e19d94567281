// import_items carga en items.json los artículos de tipo MATERIA PRIMA de una
// exportación de la anagrafica (array JSON).
//
// Uso: go run ./cmd/import_items -in anagrafica_core.json -data ./data [-charset latin1] [-replace]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/magazzino-api/internal/infrastructure/jsonfile"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	in := flag.String("in", "anagrafica_core.json", "archivo de entrada (array JSON)")
	dataDir := flag.String("data", "./data", "directorio de datos (items.json)")
	charset := flag.String("charset", "utf-8", "codificación de entrada: utf-8 | latin1")
	replace := flag.Bool("replace", false, "sobrescribir artículos con SKU ya existente")
	unitCl := flag.Float64("unit-cl", defaultUnitCl, "cl por unidad cuando el registro no lo indica")
	flag.Parse()

	if err := run(*in, *dataDir, *charset, *replace, decimal.NewFromFloat(*unitCl), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "import_items: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, dataDir, charset string, replace bool, unitCl decimal.Decimal, out io.Writer) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("abrir entrada: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	default:
		return fmt.Errorf("charset no soportado: %s", charset)
	}

	records, err := decodeRecords(r)
	if err != nil {
		return err
	}
	if !hasTipo(records) {
		fmt.Fprintln(out, "El archivo no contiene 'tipoArticolo'/'tipoProdotto': no se puede filtrar MATERIA PRIMA.")
		fmt.Fprintln(out, "Importados 0 artículos.")
		return nil
	}

	items := toItems(materiePrime(records), unitCl)

	store, err := jsonfile.Open(dataDir, jsonfile.Options{})
	if err != nil {
		return fmt.Errorf("abrir datos: %w", err)
	}
	res, err := importItems(context.Background(), store, items, replace)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Importados %d artículos (%d actualizados, %d omitidos) en %s\n",
		res.Created, res.Updated, res.Skipped, store.Dir())
	return nil
}
