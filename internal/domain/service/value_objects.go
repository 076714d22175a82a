package service

import (
	"errors"
	"strings"
)

var (
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrInvalidDuration    = errors.New("duration must be positive")
)

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

type Title struct {
	value string
}

func NewTitle(s string) (Title, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Title{}, ErrEmptyTitle
	}
	if len(t) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{value: t}, nil
}

func (t Title) Value() string { return t.value }

type Description struct {
	value string
}

// Description may be empty; only the length is bounded.
func NewDescription(s string) (Description, error) {
	d := strings.TrimSpace(s)
	if len(d) > MaxDescriptionLength {
		return Description{}, ErrDescriptionTooLong
	}
	return Description{value: d}, nil
}

func (d Description) Value() string { return d.value }

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}
