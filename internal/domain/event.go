package domain

// RecordReceipt is where the stream placed a forwarded event.
type RecordReceipt struct {
	ShardID        string
	SequenceNumber string
}
