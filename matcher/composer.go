package matcher

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"medilink-backend/models"
)

// Templates is one language's reply wording. Summary receives specialty,
// name, hospital and slot; Item receives name, specialty, hospital, slot and
// the formatted rating.
type Templates struct {
	NoMatch string
	Summary string
	Header  string
	Item    string
	Closing string
	// Soon replaces an empty next-available slot.
	Soon string
	// LowercaseSpecialty lower-cases the specialty in the summary line.
	LowercaseSpecialty bool
}

// EnglishTemplates returns the English reply wording.
func EnglishTemplates() Templates {
	return Templates{
		NoMatch:            "Not a medical query; this assistant only suggests doctors for medical conditions.",
		Summary:            "Your description points to %[1]s care. %[2]s at %[3]s is available %[4]s and is a strong fit.",
		Header:             "Here are a few tailored options:",
		Item:               "• %[1]s — %[2]s (%[3]s), next slot %[4]s, rating %[5]s/5",
		Closing:            "Let me know which doctor works best or add more context if you’d like a different specialty. For urgent or emergency issues, call your local hotline immediately.",
		Soon:               "soon",
		LowercaseSpecialty: true,
	}
}

// BanglaTemplates returns the Bangla reply wording.
func BanglaTemplates() Templates {
	return Templates{
		NoMatch: "এটি চিকিৎসা বিষয়ক প্রশ্ন নয়; আমি ডাক্তার সাজেশন বা বুকিং-শেল্প প্রদান করি না।",
		Summary: "আপনার বর্ণনা %[1]s বিভাগের চিকিৎসা প্রয়োজনীয়তার দিকে ইঙ্গিত করে। %[2]s (%[3]s) %[4]s এ উপলব্ধ এবং উপযুক্ত মনে হচ্ছে।",
		Header:  "কিছু প্রস্তাবিত বিকল্প:",
		Item:    "• %[1]s — %[2]s (%[3]s), পরের স্লট %[4]s, রেটিং %[5]s/5",
		Closing: "কোন ডাক্তারটি আপনার পছন্দ তা জানান অথবা বিস্তারিত বলুন যাতে আমি আলাদা সুপারিশ দিতে পারি। জরুরি ক্ষেত্রে স্থানীয় হটলাইন কল করুন।",
		Soon:    "শীঘ্রই",
	}
}

// Reply is the composed answer to one message.
type Reply struct {
	Text          string              `json:"reply"`
	Suggestions   []models.Suggestion `json:"suggestions"`
	PrefersBangla bool                `json:"-"`
}

// Composer renders replies from ranked doctors.
type Composer struct {
	english Templates
	bangla  Templates
}

func NewComposer(english, bangla Templates) *Composer {
	return &Composer{english: english, bangla: bangla}
}

// Compose renders the reply for ranked, which is expected to be already
// truncated.
func (c *Composer) Compose(prefersBangla bool, ranked []models.Doctor) Reply {
	tpl := c.english
	if prefersBangla {
		tpl = c.bangla
	}

	reply := Reply{
		Suggestions:   make([]models.Suggestion, 0, len(ranked)),
		PrefersBangla: prefersBangla,
	}
	if len(ranked) == 0 {
		reply.Text = tpl.NoMatch
		return reply
	}

	lead := ranked[0]
	specialty := lead.Specialty
	if tpl.LowercaseSpecialty {
		specialty = strings.ToLower(specialty)
	}

	lines := []string{
		fmt.Sprintf(tpl.Summary, specialty, lead.Name, lead.Hospital, tpl.slot(lead.NextAvailable)),
		tpl.Header,
	}
	for _, d := range ranked {
		reply.Suggestions = append(reply.Suggestions, d.Suggestion())
		lines = append(lines, fmt.Sprintf(tpl.Item,
			d.Name, d.Specialty, d.Hospital, tpl.slot(d.NextAvailable), formatRating(d.Rating)))
	}
	lines = append(lines, tpl.Closing)

	reply.Text = strings.Join(lines, "\n")
	return reply
}

// formatRating renders one decimal, rounding halves away from zero.
func formatRating(r float64) string {
	return strconv.FormatFloat(math.Round(r*10)/10, 'f', 1, 64)
}

func (t Templates) slot(next string) string {
	if strings.TrimSpace(next) == "" {
		return t.Soon
	}
	return next
}
