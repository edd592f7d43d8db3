package entity

import "time"

type AuditLog struct {
	ID         string    `db:"id"`
	EmployeeID string    `db:"employee_id"`
	Action     string    `db:"action"`
	Details    string    `db:"details"`
	IPAddress  string    `db:"ip_address"`
	Timestamp  time.Time `db:"timestamp"`
}
