package model

// Dataset is the entire persisted document. Every mutation loads it, changes
// it in memory and writes the whole thing back; readers never observe a
// partially written collection.
type Dataset struct {
	SchemaVersion    int               `json:"schemaVersion"`
	Users            []User            `json:"users"`
	Profiles         []Profile         `json:"profiles"`
	Items            []Item            `json:"items"`
	Bookings         []Booking         `json:"bookings"`
	VerificationLogs []VerificationLog `json:"verification_logs"`
	ChatRooms        []ChatRoom        `json:"chat_rooms"`
	Messages         []ChatMessage     `json:"messages"`
	ContractLogs     []ContractLog     `json:"contract_logs"`
}

// EmptyDataset returns a valid dataset with no records and no schema version,
// ready to have pending migrations applied.
func EmptyDataset() *Dataset {
	return &Dataset{
		Users:            []User{},
		Profiles:         []Profile{},
		Items:            []Item{},
		Bookings:         []Booking{},
		VerificationLogs: []VerificationLog{},
		ChatRooms:        []ChatRoom{},
		Messages:         []ChatMessage{},
		ContractLogs:     []ContractLog{},
	}
}
