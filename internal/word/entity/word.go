// Package entity defines the study vocabulary items.
package entity

// Word is one English/Korean pair shown during the experiment rounds.
type Word struct {
	English string `db:"english" json:"english"`
	Korean  string `db:"korean" json:"korean"`
}
