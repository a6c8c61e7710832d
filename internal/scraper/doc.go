// Package scraper provides authenticated HTTP fetching and HTML parsing for
// daily puzzles.
//
// The scraper package fetches the raw puzzle input and the puzzle page, sending
// the session token as the "session" cookie, and extracts every
// article.day-desc element of the page as pretty-printed HTML.
package scraper
