// seed_catalog genera el script SQL para cargar el catálogo inicial de la tienda
// a partir de una planilla CSV exportada en ISO-8859-1 (separador ';').
//
// Columnas: id;name;description;category;price;stock;active;image
// La primera fila es el encabezado. El precio acepta coma decimal (12500,50).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_items.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const columns = 8

type seedItem struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Stock       int
	Active      bool
	ImageURL    string
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	items, err := parseCatalog(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_items.sql")
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
	fmt.Printf("Generado %s: %d productos\n", outPath, len(items))
}

// parseCatalog lee la planilla (ya en UTF-8) y valida cada fila.
func parseCatalog(r io.Reader) ([]seedItem, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = columns
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	var items []seedItem
	seen := make(map[string]bool)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		it, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", line, err)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("fila %d: id duplicado %q", line, it.ID)
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	return items, nil
}

func parseRow(rec []string) (seedItem, error) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	it := seedItem{
		ID:          rec[0],
		Name:        rec[1],
		Description: rec[2],
		Category:    rec[3],
		ImageURL:    rec[7],
	}
	if it.ID == "" || it.Name == "" {
		return it, fmt.Errorf("id y name son requeridos")
	}
	price, err := decimal.NewFromString(strings.ReplaceAll(strings.ReplaceAll(rec[4], ".", ""), ",", "."))
	if err != nil || price.IsNegative() {
		return it, fmt.Errorf("precio inválido %q", rec[4])
	}
	it.Price = price
	stock, err := strconv.Atoi(rec[5])
	if err != nil || stock < 0 {
		return it, fmt.Errorf("stock inválido %q", rec[5])
	}
	it.Stock = stock
	switch strings.ToLower(rec[6]) {
	case "", "1", "si", "sí", "true":
		it.Active = true
	case "0", "no", "false":
		it.Active = false
	default:
		return it, fmt.Errorf("active inválido %q", rec[6])
	}
	return it, nil
}

// writeSQL escribe un upsert por producto; volver a correrlo actualiza precios y stock.
func writeSQL(w io.Writer, items []seedItem) error {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial de la tienda\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "INSERT INTO items (id, name, description, category, price, image_url, stock, active)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', %s, '%s', %d, %t)\n",
			escapeSQL(it.ID), escapeSQL(it.Name), escapeSQL(it.Description), escapeSQL(it.Category),
			it.Price.StringFixed(2), escapeSQL(it.ImageURL), it.Stock, it.Active)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,\n")
		b.WriteString("  category = EXCLUDED.category, price = EXCLUDED.price, image_url = EXCLUDED.image_url,\n")
		b.WriteString("  stock = EXCLUDED.stock, active = EXCLUDED.active, updated_at = now();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
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
