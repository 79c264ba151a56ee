package kafka

import "strconv"

const (
	INSERT = "INSERT"
	DELETE = "DELETE"
)

// CanalMessage mirrors the JSON payload canal pushes to Kafka for each
// binlog event.
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data holds the rows after the change.
	Data []map[string]interface{} `json:"data"`

	// Old holds the rows before the change.
	Old []map[string]interface{} `json:"old"`

	SqlType   map[string]int    `json:"sqlType"`
	MysqlType map[string]string `json:"mysqlType"`
}

// StrToUint64 converts a canal row value to uint64. Canal serializes every
// column as a string regardless of the MySQL type.
func StrToUint64(v interface{}) uint64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
