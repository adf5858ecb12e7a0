package warehouse

import (
	"database/sql"
	"fmt"
	"time"
)

// DateID converts a date to the YYYYMMDD integer key used by dim_dates
func DateID(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// EnsureDate inserts the dim_dates row for a date if it is not present yet
func EnsureDate(tx *sql.Tx, t time.Time) error {
	weekday := int(t.Weekday())
	isWeekend := weekday == 0 || weekday == 6
	quarter := (int(t.Month())-1)/3 + 1

	_, err := tx.Exec(`
		INSERT OR IGNORE INTO dim_dates
		(date_id, full_date, year, month, quarter, day_of_week, is_weekend)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, DateID(t), t.Format("2006-01-02"), t.Year(), int(t.Month()), quarter, weekday, boolToInt(isWeekend))
	if err != nil {
		return fmt.Errorf("failed to ensure date %s: %w", t.Format("2006-01-02"), err)
	}

	return nil
}
