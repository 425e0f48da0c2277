package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/meustock-api/internal/application/dto"
	"github.com/jhoicas/meustock-api/pkg/textnorm"
)

// Columnas: código;nome;descrição;preço;quantidade[;url_imagem]
const minColumns = 5

// catalogReader decodifica la planilla según el charset (utf-8 o latin1, típico de exportes de Excel).
func catalogReader(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "-", "")) {
	case "", "utf8":
		return r, nil
	case "latin1", "iso88591":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", charset)
}

// parseCatalog lee productos separados por ';'. La primera fila se ignora si es cabecera.
func parseCatalog(r io.Reader) ([]dto.ProductRequest, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.ProductRequest
	var errs []error
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		p, err := parseRow(rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", line, err))
			continue
		}
		out = append(out, p)
	}
	return out, errors.Join(errs...)
}

func isHeader(rec []string) bool {
	first := textnorm.StripAccents(textnorm.Fold(strings.TrimPrefix(rec[0], "\uFEFF")))
	return first == "code" || first == "codigo" || first == "cod"
}

func parseRow(rec []string) (dto.ProductRequest, error) {
	if len(rec) < minColumns {
		return dto.ProductRequest{}, fmt.Errorf("se esperaban %d columnas, hay %d", minColumns, len(rec))
	}
	price, err := parsePrice(rec[3])
	if err != nil {
		return dto.ProductRequest{}, fmt.Errorf("preço %q: %w", rec[3], err)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rec[4]))
	if err != nil {
		return dto.ProductRequest{}, fmt.Errorf("quantidade %q: %w", rec[4], err)
	}
	p := dto.ProductRequest{
		Code:        strings.TrimSpace(rec[0]),
		Name:        strings.TrimSpace(rec[1]),
		Description: strings.TrimSpace(rec[2]),
		Price:       price,
		Quantity:    qty,
	}
	if len(rec) > minColumns {
		if u := strings.TrimSpace(rec[5]); u != "" {
			p.URLImage = &u
		}
	}
	return p, nil
}

// parsePrice acepta "1.234,50" (pt-BR) y "1234.50".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
