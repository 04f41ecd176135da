package assessment

import (
	"fmt"
	"sort"
	"time"
)

// Temporal pattern analysis over the endorsement history present in the
// snapshot. Each analysis is a pure function of (endorsements, now) and
// returns an independent contribution; the aggregator in scoring.go runs
// them in a fixed order. Endorsements without a conviction date are skipped
// by every analysis; a missing date can never raise the score.

const clusterWindowDays = 90

// recencyContribution applies time-weighted scoring per endorsement: +15
// under 6 months old, +10 for 6-12 months, +5 for 12-24 months. It emits a
// single factor summarizing the bucket counts and escalation recommendations
// when the recent pattern warrants intervention.
func recencyContribution(endorsements []Endorsement, now time.Time) Contribution {
	var c Contribution

	sixMonths := now.AddDate(0, -6, 0)
	twelveMonths := now.AddDate(0, -12, 0)
	twentyFourMonths := now.AddDate(0, -24, 0)

	var veryRecent, recent, older int
	for _, e := range endorsements {
		if e.ConvictedAt == nil {
			continue
		}
		switch {
		case e.ConvictedAt.After(sixMonths):
			veryRecent++
			c.Points += 15
		case e.ConvictedAt.After(twelveMonths):
			recent++
			c.Points += 10
		case e.ConvictedAt.After(twentyFourMonths):
			older++
			c.Points += 5
		}
	}

	if veryRecent+recent+older == 0 {
		return Contribution{}
	}

	c.Factors = append(c.Factors, fmt.Sprintf(
		"Recent endorsements: %d within 6 months, %d within 6-12 months, %d within 12-24 months",
		veryRecent, recent, older))

	escalating := veryRecent >= 2 ||
		(veryRecent >= 1 && recent+older >= 2) ||
		c.Points >= 20
	if escalating {
		c.Recommendations = append(c.Recommendations,
			"Offending pattern is escalating - schedule an immediate driver review",
			"Consider suspension from high-risk duties pending review")
	}

	return c
}

// escalationContribution checks the three most recent endorsements for a
// strictly increasing severity sequence from oldest to newest.
func escalationContribution(endorsements []Endorsement, now time.Time) Contribution {
	dated := datedEndorsements(endorsements)
	if len(dated) < 3 {
		return Contribution{}
	}

	// Newest first, then examine the top three oldest-to-newest.
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].ConvictedAt.After(*dated[j].ConvictedAt)
	})
	third, second, first := dated[2], dated[1], dated[0]

	s1, s2, s3 := severityOf(third.Code), severityOf(second.Code), severityOf(first.Code)
	if !(s1 < s2 && s2 < s3) {
		return Contribution{}
	}

	return Contribution{
		Points: 25,
		Factors: []string{fmt.Sprintf(
			"Offence severity escalating: %s (level %d) -> %s (level %d) -> %s (level %d)",
			third.Code, s1, second.Code, s2, first.Code, s3)},
		Recommendations: []string{
			"Escalating offence severity - arrange a formal risk interview with the driver",
		},
	}
}

// frequencyContribution compares violations-per-month over the trailing 6
// and 12 month windows and flags acceleration when the short-window rate
// exceeds 1.5x the long-window rate. The 24-month rate is deliberately not
// computed: it participates in no condition and no factor text, and the
// other rules already cover the 12-24 month band.
func frequencyContribution(endorsements []Endorsement, now time.Time) Contribution {
	rate6 := monthlyRate(endorsements, now, 6)
	rate12 := monthlyRate(endorsements, now, 12)

	if rate12 == 0 || rate6 <= 1.5*rate12 {
		return Contribution{}
	}

	return Contribution{
		Points: 20,
		Factors: []string{fmt.Sprintf(
			"Offence frequency accelerating: %.2f/month over 6 months vs %.2f/month over 12 months",
			rate6, rate12)},
		Recommendations: []string{
			"Offence frequency is increasing - increase monitoring cadence",
		},
	}
}

func monthlyRate(endorsements []Endorsement, now time.Time, months int) float64 {
	cutoff := now.AddDate(0, -months, 0)
	var count int
	for _, e := range endorsements {
		if e.ConvictedAt != nil && e.ConvictedAt.After(cutoff) {
			count++
		}
	}
	return float64(count) / float64(months)
}

// repeatOffenceContribution groups endorsements by offence family prefix and
// flags every family with three or more entries. Families are emitted in
// sorted prefix order so factor output is deterministic.
func repeatOffenceContribution(endorsements []Endorsement, _ time.Time) Contribution {
	counts := make(map[string]int)
	for _, e := range endorsements {
		if e.Code == "" {
			continue
		}
		counts[offencePrefix(e.Code)]++
	}

	prefixes := make([]string, 0, len(counts))
	for prefix, n := range counts {
		if n >= 3 {
			prefixes = append(prefixes, prefix)
		}
	}
	sort.Strings(prefixes)

	var c Contribution
	for _, prefix := range prefixes {
		c.Points += 15
		c.Factors = append(c.Factors, fmt.Sprintf(
			"Repeat %s: %d endorsements", offenceFamilyName(prefix), counts[prefix]))
	}
	if len(prefixes) > 0 {
		c.Recommendations = append(c.Recommendations,
			"Repeated offences of the same type - targeted retraining recommended")
	}
	return c
}

// clusterContribution scans date-ordered endorsements and greedily forms
// maximal non-overlapping runs whose members all fall within 90 days of the
// run's start. Each run of two or more contributes 10 points per member.
func clusterContribution(endorsements []Endorsement, _ time.Time) Contribution {
	dated := datedEndorsements(endorsements)
	if len(dated) < 2 {
		return Contribution{}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].ConvictedAt.Before(*dated[j].ConvictedAt)
	})

	var c Contribution
	for i := 0; i < len(dated); {
		start := *dated[i].ConvictedAt
		j := i + 1
		for j < len(dated) && dated[j].ConvictedAt.Sub(start) <= clusterWindowDays*24*time.Hour {
			j++
		}
		if size := j - i; size >= 2 {
			span := int(dated[j-1].ConvictedAt.Sub(start).Hours() / 24)
			c.Points += 10 * size
			c.Factors = append(c.Factors, fmt.Sprintf(
				"Cluster of %d offences within %d days", size, span))
		}
		i = j
	}
	if len(c.Factors) > 0 {
		c.Recommendations = append(c.Recommendations,
			"Offences clustered in time - review circumstances around the cluster period")
	}
	return c
}

// trendContribution compares mean offence severity between the recent half
// and the older half of the trailing 24 months. Requires at least four dated
// endorsements in that window; fires when the recent mean exceeds 1.3x the
// older mean. History beyond 24 months is outside every scoring window and
// must not shift the half-split, so it is excluded here as well.
func trendContribution(endorsements []Endorsement, now time.Time) Contribution {
	cutoff := now.AddDate(0, -24, 0)
	var dated []Endorsement
	for _, e := range endorsements {
		if e.ConvictedAt != nil && e.ConvictedAt.After(cutoff) {
			dated = append(dated, e)
		}
	}
	if len(dated) < 4 {
		return Contribution{}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].ConvictedAt.After(*dated[j].ConvictedAt)
	})

	boundary := len(dated) / 2
	recentMean := meanSeverity(dated[:boundary])
	olderMean := meanSeverity(dated[boundary:])

	if olderMean == 0 || recentMean <= 1.3*olderMean {
		return Contribution{}
	}

	return Contribution{
		Points: 15,
		Factors: []string{fmt.Sprintf(
			"Offence severity trending upwards: recent mean %.1f vs earlier mean %.1f",
			recentMean, olderMean)},
		Recommendations: []string{
			"Worsening offence profile - schedule a driver behaviour assessment",
		},
	}
}

func meanSeverity(endorsements []Endorsement) float64 {
	if len(endorsements) == 0 {
		return 0
	}
	var sum int
	for _, e := range endorsements {
		sum += severityOf(e.Code)
	}
	return float64(sum) / float64(len(endorsements))
}

// datedEndorsements copies the endorsements that carry a conviction date, so
// the sorts above never reorder the caller's slice.
func datedEndorsements(endorsements []Endorsement) []Endorsement {
	out := make([]Endorsement, 0, len(endorsements))
	for _, e := range endorsements {
		if e.ConvictedAt != nil {
			out = append(out, e)
		}
	}
	return out
}
