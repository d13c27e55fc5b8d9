package archive

import (
	"time"

	"cloud.google.com/go/bigquery"
)

// SellerEventRow is one raw seller event as stored in the BigQuery archive table.
type SellerEventRow struct {
	EventID       string              `bigquery:"event_id"`
	EventType     string              `bigquery:"event_type"`
	SellerID      string              `bigquery:"seller_id"`
	ListingID     bigquery.NullString `bigquery:"listing_id"`
	AmountHalalas int64               `bigquery:"amount_halalas"`
	MetricDate    string              `bigquery:"metric_date"`
	OccurredAt    time.Time           `bigquery:"occurred_at"`
	IngestedAt    time.Time           `bigquery:"ingested_at"`
	Payload       bigquery.NullJSON   `bigquery:"payload"`
}
