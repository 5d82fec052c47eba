package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrInvalidCatalog is returned when a catalog fails validation
var ErrInvalidCatalog = errors.New("invalid catalog")

// Option is one entry of the front-desk menu
type Option struct {
	ID       string   // Single character menu key, e.g. "1"
	Label    string   // Short name shown in listings
	Reply    string   // Canned reply text
	Triggers []string // Lowercase phrases, checked in order
}

// Catalog holds the static content served by the router.
// Option order is significant: keyword matching walks options in this order.
type Catalog struct {
	Options        []Option
	Footer         string   // Appended to every canned reply
	HandoffPhrases []string // Lowercase phrases that request a human
	HandoffAck     string   // Sent to the sender on handoff
	AdminNotice    string   // Format string: sender, original text
	Persona        string   // Generative responder instructions
	NoGreeting     string   // Appended to Persona for returning senders
	Fallback       string   // Sent when the generative responder is unavailable
}

// Lookup finds an option by id
func (c *Catalog) Lookup(id string) (*Option, bool) {
	for i := range c.Options {
		if c.Options[i].ID == id {
			return &c.Options[i], true
		}
	}
	return nil, false
}

// MatchKeyword returns the first option, in catalog order, with a trigger
// contained in the normalized text. Later options are never considered once
// one matches.
func (c *Catalog) MatchKeyword(normalized string) (*Option, bool) {
	for i := range c.Options {
		for _, phrase := range c.Options[i].Triggers {
			if phrase != "" && strings.Contains(normalized, phrase) {
				return &c.Options[i], true
			}
		}
	}
	return nil, false
}

// RequestsHuman checks if the normalized text contains a handoff phrase
func (c *Catalog) RequestsHuman(normalized string) bool {
	for _, phrase := range c.HandoffPhrases {
		if phrase != "" && strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}

// CannedReply renders the reply for an option followed by the menu footer
func (c *Catalog) CannedReply(opt *Option) string {
	return opt.Reply + c.Footer
}

// AdminNotification renders the notice sent to administrators on handoff
func (c *Catalog) AdminNotification(sender, text string) string {
	return fmt.Sprintf(c.AdminNotice, sender, text)
}

// Instructions returns the persona, suffixed with the no-greeting directive
// unless the sender is starting a new session.
func (c *Catalog) Instructions(isNewSession bool) string {
	if isNewSession {
		return c.Persona
	}
	return c.Persona + c.NoGreeting
}

// Validate checks option ids are unique single characters with a reply,
// and lowercases trigger and handoff phrases in place.
func (c *Catalog) Validate() error {
	if len(c.Options) == 0 {
		return fmt.Errorf("%w: no options", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(c.Options))
	for i := range c.Options {
		opt := &c.Options[i]
		if utf8.RuneCountInString(opt.ID) != 1 {
			return fmt.Errorf("%w: option id %q must be a single character", ErrInvalidCatalog, opt.ID)
		}
		if seen[opt.ID] {
			return fmt.Errorf("%w: duplicate option id %q", ErrInvalidCatalog, opt.ID)
		}
		seen[opt.ID] = true
		if strings.TrimSpace(opt.Reply) == "" {
			return fmt.Errorf("%w: option %q has no reply", ErrInvalidCatalog, opt.ID)
		}
		for j, phrase := range opt.Triggers {
			opt.Triggers[j] = strings.ToLower(phrase)
		}
	}
	for i, phrase := range c.HandoffPhrases {
		c.HandoffPhrases[i] = strings.ToLower(phrase)
	}
	if c.Persona == "" {
		return fmt.Errorf("%w: empty persona", ErrInvalidCatalog)
	}
	if strings.Count(c.AdminNotice, "%s") != 2 {
		return fmt.Errorf("%w: admin notice needs exactly two %%s verbs", ErrInvalidCatalog)
	}
	return nil
}
