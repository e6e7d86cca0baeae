// Package domain defines the persistence models of the research assistant:
// user credentials, search events, scraped snippet content, generated
// summaries, and the flat-file report history entry. The relational types
// are mapped with GORM; ReportEntry lives in a separate append-only JSON
// file and is deliberately not a table.
package domain

import "time"

// User is a credential record: one row per username, created on
// registration and immutable afterwards. Only the hex digest of the
// password is stored, never the plaintext.
//
// Fields:
//   - Username: case-sensitive natural primary key.
//   - PasswordHash: fixed-length hex digest (SHA-256) of the password.
//   - CreatedAt: registration timestamp.
type User struct {
	Username     string    `json:"username"   gorm:"type:varchar(64);primaryKey"`
	PasswordHash string    `json:"-"          gorm:"type:char(64);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Search records one research invocation. Rows are append-only: never
// updated, never deleted. ResultsCount is the number of results the
// provider actually returned (0 when the search came back empty, even if
// the renderer later shows a synthetic placeholder).
type Search struct {
	ID           uint      `json:"id"            gorm:"primaryKey;autoIncrement"`
	Query        string    `json:"query"         gorm:"type:text;not null"`
	ResultsCount int       `json:"results_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"    gorm:"index"`
}

// TableName returns the database table name for Search.
func (Search) TableName() string { return "searches" }

// ScrapedContent is a snippet captured from one search result, owned by a
// Search row. Zero or more per search; immutable once written.
//
// WordCount is the whitespace-token count of Text.
type ScrapedContent struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	SearchID  uint      `json:"search_id"  gorm:"not null;index"`
	Title     string    `json:"title"      gorm:"type:text"`
	URL       string    `json:"url"        gorm:"type:text"`
	Text      string    `json:"text"       gorm:"type:text"`
	WordCount int       `json:"word_count"`
	ScrapedAt time.Time `json:"scraped_at"`

	// Search is the owning search event. No delete operation exists in the
	// application, so the constraint documents ownership more than cascade.
	Search Search `json:"-" gorm:"foreignKey:SearchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ScrapedContent.
func (ScrapedContent) TableName() string { return "scraped_content" }

// Summary is a generated research summary owned by a Search row. Zero or
// more per search; readers pick the most recent one. Immutable once written.
type Summary struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	SearchID  uint      `json:"search_id"  gorm:"not null;index"`
	Summary   string    `json:"summary"    gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`

	Search Search `json:"-" gorm:"foreignKey:SearchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Summary.
func (Summary) TableName() string { return "summaries" }

// ReportEntry is one line of the flat report-history file: a generated
// export artifact attributed to a user. The collection is append-only and
// filtered client-side by user on read.
type ReportEntry struct {
	User  string `json:"user"`
	Title string `json:"title"`
	Path  string `json:"path"`
	Date  string `json:"date"`
}
