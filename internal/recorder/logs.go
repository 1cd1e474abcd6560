package recorder

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
)

// LogEntry is one client-submitted log line.
type LogEntry struct {
	ID         int64     `json:"id"`
	CreatedUTC time.Time `json:"createdUtc"`
	Level      string    `json:"level"`
	Message    string    `json:"message"`
	Source     string    `json:"source,omitempty"`
	JSONData   string    `json:"jsonData,omitempty"`
	RequestID  string    `json:"requestId,omitempty"`
	ErrorCode  *int      `json:"errorCode,omitempty"`
	ClientIP   string    `json:"clientIp,omitempty"`
	Tags       string    `json:"tags,omitempty"`
}

// LogStore keeps the log lines served over HTTP.
type LogStore interface {
	// InsertLog stores e and returns its id. A zero CreatedUTC is set to now.
	InsertLog(e *LogEntry) (int64, error)
	// RecentLogs returns up to limit entries, newest first.
	RecentLogs(limit int) ([]LogEntry, error)
}

func (r *SQLiteRecorder) InsertLog(e *LogEntry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.CreatedUTC.IsZero() {
		e.CreatedUTC = time.Now().UTC()
	}
	var code interface{}
	if e.ErrorCode != nil {
		code = *e.ErrorCode
	}
	res, err := r.db.Exec(`INSERT INTO logs
		(created_utc, level, message, source, json_data, request_id, error_code, client_ip, tags)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		e.CreatedUTC.UnixMilli(), e.Level, e.Message,
		nullString(e.Source), nullString(e.JSONData), nullString(e.RequestID),
		code, nullString(e.ClientIP), nullString(e.Tags),
	)
	if err != nil {
		return 0, errors.Wrap(err, "insert log")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "log id")
	}
	e.ID = id
	return id, nil
}

func (r *SQLiteRecorder) RecentLogs(limit int) ([]LogEntry, error) {
	rows, err := r.db.Query(`SELECT id, created_utc, level, message, source, json_data,
		request_id, error_code, client_ip, tags
		FROM logs ORDER BY created_utc DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query logs")
	}
	defer rows.Close()

	out := []LogEntry{}
	for rows.Next() {
		var (
			e       LogEntry
			created int64
			code    sql.NullInt64
		)
		var source, data, reqID, clientIP, tags sql.NullString
		if err := rows.Scan(&e.ID, &created, &e.Level, &e.Message, &source, &data, &reqID, &code, &clientIP, &tags); err != nil {
			return nil, errors.Wrap(err, "scan log")
		}
		e.CreatedUTC = time.UnixMilli(created).UTC()
		e.Source, e.JSONData, e.RequestID = source.String, data.String, reqID.String
		e.ClientIP, e.Tags = clientIP.String, tags.String
		if code.Valid {
			c := int(code.Int64)
			e.ErrorCode = &c
		}
		out = append(out, e)
	}
	return out, errors.Wrap(rows.Err(), "iterate logs")
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
