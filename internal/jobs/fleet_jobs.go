package jobs

import (
	"context"
	"time"

	"bikeshop-backend/internal/logger"
)

// SyncBikeStatuses reconciles every bike's RENTED/AVAILABLE status with live
// booking state. Catches drift from bookings edited outside the usual flow.
func (jr *JobRunner) SyncBikeStatuses() {
	jr.runWithRecovery("SyncBikeStatuses", func() {
		ctx := context.Background()

		changed, err := jr.services.Bikes.SyncStatuses(ctx)
		if err != nil {
			logger.Error("Failed to sync bike statuses", "error", err)
			return
		}

		logger.Info("Synced bike statuses", "changed", changed)
	})
}

// FlagServiceDue updates each bike's check status from its next service date:
// OVERDUE once the date has passed, DUE within the 14 days before it.
func (jr *JobRunner) FlagServiceDue() {
	jr.runWithRecovery("FlagServiceDue", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		query := `
			UPDATE bikes
			SET check_status = CASE
			        WHEN next_service_on < $1::date THEN 'OVERDUE'
			        ELSE 'DUE'
			    END,
			    updated_on = NOW()
			WHERE next_service_on IS NOT NULL
			  AND next_service_on <= $1::date + INTERVAL '14 days'
			  AND check_status <> CASE
			        WHEN next_service_on < $1::date THEN 'OVERDUE'
			        ELSE 'DUE'
			    END
		`

		result, err := jr.db.ExecContext(ctx, query, today)
		if err != nil {
			logger.Error("Failed to flag service-due bikes", "error", err)
			return
		}

		count, _ := result.RowsAffected()
		logger.Info("Flagged bikes for service", "count", count)
	})
}

// SendReturnReminders emails customers whose active bookings are past their
// end date and not yet returned.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		today := time.Now().UTC().Format("2006-01-02")

		query := `
			SELECT b.id, c.email, c.first_name || ' ' || c.last_name
			FROM bookings b
			JOIN customers c ON c.id = b.customer_id
			WHERE b.status = 'ACTIVE'
			  AND b.end_date < $1::date
			  AND b.return_date IS NULL
			  AND c.email IS NOT NULL
			  AND c.email <> ''
		`

		rows, err := jr.db.QueryContext(ctx, query, today)
		if err != nil {
			logger.Error("Failed to query overdue bookings", "error", err)
			return
		}
		defer rows.Close()

		type reminder struct {
			bookingID int32
			email     string
			name      string
		}
		var reminders []reminder

		for rows.Next() {
			var rem reminder
			if err := rows.Scan(&rem.bookingID, &rem.email, &rem.name); err != nil {
				logger.Error("Failed to scan overdue booking", "error", err)
				continue
			}
			reminders = append(reminders, rem)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating overdue bookings", "error", err)
			return
		}

		sent := 0
		for _, rem := range reminders {
			booking, err := jr.store.BookingRepository.GetByID(ctx, rem.bookingID)
			if err != nil {
				logger.Error("Failed to load overdue booking", "booking_id", rem.bookingID, "error", err)
				continue
			}
			if err := jr.services.Email.SendReturnReminder(ctx, rem.email, rem.name, booking); err != nil {
				logger.Error("Failed to send return reminder",
					"booking_id", rem.bookingID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent return reminders", "sent", sent, "overdue", len(reminders))
	})
}
