package models

// Storage acknowledgments returned verbatim to clients on mutation
// endpoints, mirroring the driver's update/delete/insert results.

type UpdateAck struct {
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedID    interface{} `json:"upsertedId,omitempty"`
}

type DeleteAck struct {
	DeletedCount int64 `json:"deletedCount"`
}

type InsertAck struct {
	InsertedID interface{} `json:"insertedId"`
}
