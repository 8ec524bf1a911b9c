// Package ingest reads snapshot CSV files and hypothesis YAML files into the
// plain data structures the engine consumes. All file I/O in the application
// lives here and in main; the analysis stages themselves never touch it.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/marginlens/marginlens/pkg/pnl"
	"go.uber.org/zap"
)

// LoadSnapshot reads the GL CSV (required) and the optional payroll, vendor,
// and segment CSVs. Empty paths for optional datasets simply leave them
// absent; downstream stages degrade gracefully.
func LoadSnapshot(logger *zap.Logger, glPath, payrollPath, vendorPath, segmentPath string) (pnl.Snapshot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var snapshot pnl.Snapshot
	var err error

	snapshot.GL, err = LoadGL(glPath)
	if err != nil {
		return snapshot, fmt.Errorf("failed to load GL rows from %s: %w", glPath, err)
	}

	if payrollPath != "" {
		snapshot.Payroll, err = LoadPayroll(payrollPath)
		if err != nil {
			return snapshot, fmt.Errorf("failed to load payroll from %s: %w", payrollPath, err)
		}
	}
	if vendorPath != "" {
		snapshot.Vendor, err = LoadVendor(vendorPath)
		if err != nil {
			return snapshot, fmt.Errorf("failed to load vendor spend from %s: %w", vendorPath, err)
		}
	}
	if segmentPath != "" {
		snapshot.Segments, err = LoadSegments(segmentPath)
		if err != nil {
			return snapshot, fmt.Errorf("failed to load segment revenue from %s: %w", segmentPath, err)
		}
	}

	logger.Info("loaded input snapshot",
		zap.String("op", "ingest.LoadSnapshot"),
		zap.Int("glRows", len(snapshot.GL)),
		zap.Int("payrollRows", len(snapshot.Payroll)),
		zap.Int("vendorRows", len(snapshot.Vendor)),
		zap.Int("segmentRows", len(snapshot.Segments)),
	)
	return snapshot, nil
}

// LoadGL reads monthly general-ledger rows from a CSV file with a header of
// month,revenue,cogs,opex_sales_marketing,opex_rnd,opex_gna,opex_other.
// The opex columns are optional and default to 0.
func LoadGL(path string) ([]pnl.RawMonthlyRow, error) {
	var rows []pnl.RawMonthlyRow
	err := readCSV(path, func(record map[string]string) error {
		row := pnl.RawMonthlyRow{Month: record["month"]}
		var err error
		if row.Revenue, err = requiredFloat(record, "revenue"); err != nil {
			return err
		}
		if row.COGS, err = requiredFloat(record, "cogs"); err != nil {
			return err
		}
		row.OpexSalesMarketing = optionalFloat(record, "opex_sales_marketing")
		row.OpexRnD = optionalFloat(record, "opex_rnd")
		row.OpexGnA = optionalFloat(record, "opex_gna")
		row.OpexOther = optionalFloat(record, "opex_other")
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// LoadPayroll reads payroll summary rows from a CSV file with a header of
// month,function,headcount,fully_loaded_cost. The cost column is optional.
func LoadPayroll(path string) ([]pnl.PayrollRecord, error) {
	var rows []pnl.PayrollRecord
	err := readCSV(path, func(record map[string]string) error {
		rec := pnl.PayrollRecord{
			Month:    record["month"],
			Function: record["function"],
		}
		headcount, err := strconv.Atoi(strings.TrimSpace(record["headcount"]))
		if err != nil {
			return fmt.Errorf("invalid headcount %q: %w", record["headcount"], err)
		}
		rec.Headcount = headcount
		if raw := strings.TrimSpace(record["fully_loaded_cost"]); raw != "" {
			cost, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid fully_loaded_cost %q: %w", raw, err)
			}
			rec.FullyLoadedCost = &cost
		}
		rows = append(rows, rec)
		return nil
	})
	return rows, err
}

// LoadVendor reads vendor spend rows from a CSV file with a header of
// month,vendor,category,amount.
func LoadVendor(path string) ([]pnl.VendorRecord, error) {
	var rows []pnl.VendorRecord
	err := readCSV(path, func(record map[string]string) error {
		rec := pnl.VendorRecord{
			Month:    record["month"],
			Vendor:   record["vendor"],
			Category: record["category"],
		}
		amount, err := requiredFloat(record, "amount")
		if err != nil {
			return err
		}
		rec.Amount = amount
		rows = append(rows, rec)
		return nil
	})
	return rows, err
}

// LoadSegments reads segment revenue rows from a CSV file with a header of
// month,segment,revenue.
func LoadSegments(path string) ([]pnl.SegmentRecord, error) {
	var rows []pnl.SegmentRecord
	err := readCSV(path, func(record map[string]string) error {
		rec := pnl.SegmentRecord{
			Month:   record["month"],
			Segment: record["segment"],
		}
		revenue, err := requiredFloat(record, "revenue")
		if err != nil {
			return err
		}
		rec.Revenue = revenue
		rows = append(rows, rec)
		return nil
	})
	return rows, err
}

// readCSV streams a headered CSV file, invoking handle with a column-name to
// value map per data row.
func readCSV(path string, handle func(record map[string]string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line++

		record := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				record[name] = fields[i]
			}
		}
		if err := handle(record); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func requiredFloat(record map[string]string, column string) (float64, error) {
	raw := strings.TrimSpace(record[column])
	if raw == "" {
		return 0, fmt.Errorf("missing required column %q", column)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", column, raw, err)
	}
	return value, nil
}

func optionalFloat(record map[string]string, column string) float64 {
	raw := strings.TrimSpace(record[column])
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}
