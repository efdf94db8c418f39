// AngelaMos | 2026
// entity.go

package dashboard

// MonthCount buckets rows by month number alone. Rows from the same month of
// different years land in the same bucket.
type MonthCount struct {
	Month int `db:"mes"`
	Total int `db:"total"`
}

// OwnerCount is the number of clients held by one account. Name is nil when
// the account no longer exists.
type OwnerCount struct {
	OwnerID string  `db:"usuario_id"`
	Name    *string `db:"nome"`
	Total   int     `db:"total"`
}

type Summary struct {
	TotalClients      int
	TotalCaseFiles    int
	CaseFilesPerMonth []MonthCount
}
