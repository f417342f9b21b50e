// Package stats aggregates quiz result events into per-topic accuracy,
// ordered so the weakest topics come first.
package stats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tmorita/studycoach/internal/store"
)

// TopicStat is the aggregate for one topic.
type TopicStat struct {
	Topic    string
	Attempts int
	Correct  int
	Accuracy float64 // Correct / Attempts
}

// Aggregate computes per-topic stats from result events.
//
// Topics are sorted by ascending accuracy, so the topics most in need
// of review come first. Ties break alphabetically by topic.
func Aggregate(events []store.ResultEvent) []TopicStat {
	byTopic := make(map[string]*TopicStat)
	for _, ev := range events {
		st := byTopic[ev.Topic]
		if st == nil {
			st = &TopicStat{Topic: ev.Topic}
			byTopic[ev.Topic] = st
		}
		st.Attempts++
		if ev.Correct {
			st.Correct++
		}
	}

	out := make([]TopicStat, 0, len(byTopic))
	for _, st := range byTopic {
		st.Accuracy = float64(st.Correct) / float64(st.Attempts)
		out = append(out, *st)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Accuracy != out[j].Accuracy {
			return out[i].Accuracy < out[j].Accuracy
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}

// FormatTable renders stats as a CSV block with a header row, the shape
// the coaching prompt embeds.
func FormatTable(stats []TopicStat) string {
	var b strings.Builder
	b.WriteString("topic,attempts,correct,accuracy\n")
	for _, st := range stats {
		b.WriteString(csvField(st.Topic))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(st.Attempts))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(st.Correct))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(st.Accuracy, 'f', 2, 64))
		b.WriteByte('\n')
	}
	return b.String()
}

// csvField quotes a topic containing CSV-significant characters.
func csvField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
