package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/studycollab/collab-back/internal/models"
)

const bookingsSheet = "Bookings"

// BuildBookingsWorkbook renders bookings into an .xlsx workbook for the
// admin export download.
func BuildBookingsWorkbook(bookings []models.BookedSession) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Session ID", "Session Title", "Tutor Email", "Student Email", "Payment Status", "Transaction ID", "Booked At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(bookingsSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, b := range bookings {
		values := []interface{}{
			b.ID,
			b.SessionID,
			b.SessionTitle,
			b.TutorEmail,
			b.StudentEmail,
			b.PaymentStatus,
			b.TransactionID,
			b.BookedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(bookingsSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row+2, err)
			}
		}
	}

	return f, nil
}
