package events

var FilterUpdatedTopic = "FilterUpdatedEvent"

// FilterUpdated is published by the settings surface whenever a subscriber
// changes their search profile. The old keywords/location identify the group
// signature whose cached results are now stale.
type FilterUpdated struct {
	UserID      int64
	OldKeywords []string
	OldLocation string
}
