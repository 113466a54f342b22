// seed_catalog genera el script SQL de carga inicial de insumos a partir de una planilla CSV
// exportada del sistema de compras (separador ';', codificación ISO-8859-1 o UTF-8).
//
// Uso: go run ./cmd/seed_catalog [ruta/insumos.csv] [--latin1]
// Por defecto busca insumos.csv en el directorio actual.
// Columnas: id;nombre;unidad;stock_actual;stock_minimo;precio;costo;es_ingrediente
// Escribe: internal/infrastructure/postgres/migrations/002_seed_inventory.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type seedItem struct {
	ID           string
	Name         string
	Unit         string
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	Price        decimal.Decimal
	Cost         decimal.Decimal
	IsIngredient bool
}

func main() {
	csvPath := "insumos.csv"
	latin1 := false
	for _, a := range os.Args[1:] {
		if a == "--latin1" {
			latin1 = true
			continue
		}
		csvPath = a
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	items, err := parseItems(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_inventory.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, items); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d insumos\n", outPath, len(items))
}

// parseItems lee la planilla, descarta el encabezado y valida cada fila.
// Los ids repetidos se quedan con la última fila; la salida se ordena por id.
func parseItems(r io.Reader) ([]seedItem, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 8
	cr.TrimLeadingSpace = true

	byID := make(map[string]seedItem)
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "id") {
			continue
		}
		it, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", line, err)
		}
		byID[it.ID] = it
	}

	items := make([]seedItem, 0, len(byID))
	for _, it := range byID {
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func parseRow(rec []string) (seedItem, error) {
	it := seedItem{
		ID:   strings.TrimSpace(rec[0]),
		Name: strings.TrimSpace(rec[1]),
		Unit: strings.TrimSpace(rec[2]),
	}
	if it.ID == "" || it.Name == "" {
		return it, fmt.Errorf("id y nombre son obligatorios")
	}
	nums := []*decimal.Decimal{&it.CurrentStock, &it.MinimumStock, &it.Price, &it.Cost}
	for i, dst := range nums {
		// la planilla usa coma decimal
		raw := strings.ReplaceAll(strings.TrimSpace(rec[3+i]), ",", ".")
		if raw == "" {
			raw = "0"
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return it, fmt.Errorf("columna %d: %w", 4+i, err)
		}
		if v.IsNegative() {
			return it, fmt.Errorf("columna %d: valor negativo %s", 4+i, raw)
		}
		*dst = v
	}
	flag := strings.ToLower(strings.TrimSpace(rec[7]))
	switch flag {
	case "si", "sí", "s", "x":
		it.IsIngredient = true
	case "no", "n", "":
	default:
		b, err := strconv.ParseBool(flag)
		if err != nil {
			return it, fmt.Errorf("es_ingrediente: %q", rec[7])
		}
		it.IsIngredient = b
	}
	return it, nil
}

func writeSQL(w io.Writer, items []seedItem) error {
	var b strings.Builder
	b.WriteString("-- Carga inicial de insumos\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	if len(items) == 0 {
		_, err := io.WriteString(w, b.String())
		return err
	}
	b.WriteString("INSERT INTO inventory_items (id, name, unit_measure, current_stock, minimum_stock, price, purchase_cost, is_ingredient) VALUES\n")
	for i, it := range items {
		fmt.Fprintf(&b, "  ('%s', '%s', %s, %s, %s, %s, %s, %t)",
			escapeSQL(it.ID), escapeSQL(it.Name), nullableText(it.Unit),
			it.CurrentStock.String(), it.MinimumStock.String(), it.Price.String(), it.Cost.String(), it.IsIngredient)
		if i < len(items)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString("\n")
		}
	}
	// el stock actual no se pisa: lo mantiene el libro de movimientos
	b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, unit_measure = EXCLUDED.unit_measure,\n")
	b.WriteString("  minimum_stock = EXCLUDED.minimum_stock, price = EXCLUDED.price, is_ingredient = EXCLUDED.is_ingredient;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nullableText(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + escapeSQL(s) + "'"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
