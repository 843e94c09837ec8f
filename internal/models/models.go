package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TargetKind identifies the scraping strategy for a target.
type TargetKind string

const (
	TargetFacebook TargetKind = "facebook"
	TargetWebsite  TargetKind = "website"
)

// PostUser is the (optional) author metadata carried on a scraped post.
type PostUser struct {
	ID   string `json:"id,omitempty" bson:"id,omitempty"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`
}

// Attachment is an image or link attached to a post. OCRText, when present,
// holds text recognized inside an attached image and counts toward the
// post's extractable text.
type Attachment struct {
	URL     string `json:"url,omitempty" bson:"url,omitempty"`
	OCRText string `json:"ocrText,omitempty" bson:"ocrText,omitempty"`
}

// Post is a raw scraped record from a Facebook group or a listing site.
// Content and Text are alternate carriers for the body; Content wins when
// both are set.
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Content       string             `json:"content,omitempty" bson:"content,omitempty"`
	Text          string             `json:"text,omitempty" bson:"text,omitempty"`
	User          *PostUser          `json:"user,omitempty" bson:"user,omitempty"`
	FacebookURL   string             `json:"facebookUrl,omitempty" bson:"facebookUrl,omitempty"`
	LikesCount    int                `json:"likesCount,omitempty" bson:"likesCount,omitempty"`
	CommentsCount int                `json:"commentsCount,omitempty" bson:"commentsCount,omitempty"`
	Attachments   []Attachment       `json:"attachments,omitempty" bson:"attachments,omitempty"`
	Source        string             `json:"source,omitempty" bson:"source,omitempty"`
	ScrapedAt     time.Time          `json:"scrapedAt,omitempty" bson:"scrapedAt,omitempty"`
}

// ExtractedJob is the structured projection of a post. Every field is
// best-effort and may be empty; the JSON field names are the wire contract
// shared with the AI refinement pass and the digest templates, so they must
// not change.
type ExtractedJob struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	JobTitle        string             `json:"jobTitle" bson:"jobTitle"`
	Company         string             `json:"company" bson:"company"`
	Location        string             `json:"location" bson:"location"`
	Salary          string             `json:"salary" bson:"salary"`
	EmploymentType  string             `json:"employmentType" bson:"employmentType"`
	TechnicalSkills []string           `json:"technicalSkills" bson:"technicalSkills"`
	Tags            []string           `json:"tags" bson:"tags"`
	Description     string             `json:"description" bson:"description"`
	SourceURL       string             `json:"sourceUrl,omitempty" bson:"sourceUrl,omitempty"`
	Source          string             `json:"source,omitempty" bson:"source,omitempty"`
	PostedBy        string             `json:"postedBy,omitempty" bson:"postedBy,omitempty"`
	LikesCount      int                `json:"likesCount,omitempty" bson:"likesCount,omitempty"`
	CommentsCount   int                `json:"commentsCount,omitempty" bson:"commentsCount,omitempty"`
	CreatedAt       time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ScrapeTarget is an admin-managed source: a Facebook group or a listing
// page on an external site. Selectors apply to website targets only.
type ScrapeTarget struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Kind         TargetKind         `json:"kind" bson:"kind"`
	URL          string             `json:"url" bson:"url"`
	ItemSelector string             `json:"itemSelector,omitempty" bson:"itemSelector,omitempty"`
	LinkSelector string             `json:"linkSelector,omitempty" bson:"linkSelector,omitempty"`
	Enabled      bool               `json:"enabled" bson:"enabled"`
	LastRunAt    *time.Time         `json:"lastRunAt,omitempty" bson:"lastRunAt,omitempty"`
	CreatedAt    time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// Subscriber receives the email digest.
type Subscriber struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}
