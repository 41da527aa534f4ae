// Package seed imports the optional medicine catalog at startup.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"medstore/m/domain"
	"medstore/m/internal/store"
)

// ReadMedicines parses a catalog with the header
// name,packing,generic_name,supplier. Rows without a name are skipped.
func ReadMedicines(r io.Reader) ([]domain.Medicine, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	var medicines []domain.Medicine
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		if len(record) < 4 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" {
			continue
		}
		medicines = append(medicines, domain.Medicine{
			Name:         name,
			Packing:      strings.TrimSpace(record[1]),
			GenericName:  strings.TrimSpace(record[2]),
			SupplierName: strings.TrimSpace(record[3]),
		})
	}
	return medicines, nil
}

// LoadMedicines ingests the CSV at csvPath, ignoring names already in the
// catalog. An empty path is a no-op.
func LoadMedicines(ctx context.Context, s *store.Store, csvPath string, log *zap.Logger) (int, error) {
	if csvPath == "" {
		return 0, nil
	}
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open medicine catalog %s: %w", csvPath, err)
	}
	defer file.Close()

	medicines, err := ReadMedicines(file)
	if err != nil {
		return 0, err
	}
	n, err := s.ImportMedicines(ctx, medicines)
	if err != nil {
		return 0, fmt.Errorf("seed medicine catalog: %w", err)
	}
	log.Info("seeded medicine catalog", zap.String("path", csvPath), zap.Int("rows", n), zap.Int("skipped", len(medicines)-n))
	return n, nil
}
