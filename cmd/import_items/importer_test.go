package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jhoicas/magazzino-api/internal/domain/entity"
	"github.com/jhoicas/magazzino-api/internal/infrastructure/jsonfile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sample = `[
  {"codice": " gin01 ", "descrizione": "Gin Mare 70cl", "categoria": "GIN", "fornitore": "doreca", "confezione": 6, "tipoArticolo": "materia prima "},
  {"codice": "LIM01", "descrizione": "Limoni", "tipoArticolo": "PRODOTTO FINITO"},
  {"codice": "VOD01", "descrizione": "Vodka", "tipoProdotto": "MATERIA PRIMA", "formatoCl": "100"},
  {"descrizione": "senza codice", "tipoArticolo": "MATERIA PRIMA"}
]`

func TestToItems_FiltraMateriePrime(t *testing.T) {
	records, err := decodeRecords(strings.NewReader(sample))
	require.NoError(t, err)
	require.True(t, hasTipo(records))

	items := toItems(materiePrime(records), decimal.NewFromInt(defaultUnitCl))
	require.Len(t, items, 2)

	gin := items[0]
	assert.Equal(t, "GIN01", gin.SKU)
	assert.Equal(t, entity.CategoryGin, gin.CategoryID)
	assert.Equal(t, entity.SupplierDoreca, gin.Supplier)
	assert.Equal(t, 6, gin.EffectivePackSize())
	assert.True(t, gin.UnitToCl.Equal(decimal.NewFromInt(70)))
	assert.True(t, gin.Active)

	vod := items[1]
	assert.Equal(t, "VOD01", vod.SKU)
	assert.Equal(t, entity.SupplierVari, vod.Supplier, "proveedor ausente cae en VARI")
	assert.True(t, vod.UnitToCl.Equal(decimal.NewFromInt(100)))
}

func TestRun_SinTipoNoImportaNada(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(in, []byte(`[{"codice":"X1","descrizione":"x"}]`), 0o644))

	var out bytes.Buffer
	require.NoError(t, run(in, filepath.Join(dir, "data"), "utf-8", false, decimal.NewFromInt(70), &out))
	assert.Contains(t, out.String(), "Importados 0")
	_, err := os.Stat(filepath.Join(dir, "data", jsonfile.ItemsFile))
	assert.True(t, os.IsNotExist(err))
}

func TestRun_Latin1YReplace(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	raw, err := charmap.ISO8859_1.NewEncoder().String(`[{"codice":"AM01","descrizione":"Amaro Montenegro però","categoria":"amari","tipoArticolo":"MATERIA PRIMA"}]`)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(in, []byte(raw), 0o644))
	data := filepath.Join(dir, "data")

	var out bytes.Buffer
	require.NoError(t, run(in, data, "latin1", false, decimal.NewFromInt(70), &out))
	assert.Contains(t, out.String(), "Importados 1")

	// Segunda pasada sin -replace: se omite.
	out.Reset()
	require.NoError(t, run(in, data, "latin1", false, decimal.NewFromInt(70), &out))
	assert.Contains(t, out.String(), "1 omitidos")

	store, err := jsonfile.Open(data, jsonfile.Options{})
	require.NoError(t, err)
	it, err := store.Items().GetBySKU(context.Background(), "AM01")
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, "Amaro Montenegro però", it.Name)
	itemID := it.ItemID

	out.Reset()
	require.NoError(t, run(in, data, "latin1", true, decimal.NewFromInt(75), &out))
	assert.Contains(t, out.String(), "1 actualizados")

	store, err = jsonfile.Open(data, jsonfile.Options{})
	require.NoError(t, err)
	it, err = store.Items().GetBySKU(context.Background(), "AM01")
	require.NoError(t, err)
	assert.Equal(t, itemID, it.ItemID, "el id se conserva al reemplazar")
	assert.True(t, it.UnitToCl.Equal(decimal.NewFromInt(75)))
}

func TestDecodeRecords_NoArray(t *testing.T) {
	_, err := decodeRecords(strings.NewReader(`{"a":1}`))
	assert.Error(t, err)
}
