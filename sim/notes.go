package sim

import (
	"strings"

	"github.com/warp/workforce-sim/generic"
	"github.com/warp/workforce-sim/ledger"
)

// =============================================================================
// NOTES - Supervisor narrative for recorded behaviors
// =============================================================================

// A note is four weighted fragments:
//
//	<discovery> <subject name> <verb phrase> <object phrase>
//
// e.g. "During my walkthrough I saw that Maria Lopez came up with a faster
// way to stage pallets."

type phrase = generic.Weighted[string]

var discoveryPhrases = []phrase{
	{Value: "During my walkthrough I saw that", Weight: 4},
	{Value: "I noticed that", Weight: 5},
	{Value: "A colleague reported that", Weight: 2},
	{Value: "At the shift handover I learned that", Weight: 2},
	{Value: "While reviewing the line I observed that", Weight: 2},
	{Value: "Today", Weight: 3},
}

type noteTemplate struct {
	verbs   []phrase
	objects []phrase
}

var noteTemplates = map[ledger.Comptype]noteTemplate{
	ledger.Idea: {
		verbs: []phrase{
			{Value: "came up with", Weight: 3},
			{Value: "suggested", Weight: 3},
			{Value: "proposed", Weight: 2},
		},
		objects: []phrase{
			{Value: "a faster way to stage pallets.", Weight: 2},
			{Value: "a simpler changeover sequence.", Weight: 2},
			{Value: "a fix for a recurring jam on the line.", Weight: 1},
			{Value: "a better layout for the tool board.", Weight: 1},
		},
	},
	ledger.Feat: {
		verbs: []phrase{
			{Value: "single-handedly finished", Weight: 2},
			{Value: "managed to complete", Weight: 3},
			{Value: "pulled off", Weight: 1},
		},
		objects: []phrase{
			{Value: "an urgent order ahead of schedule.", Weight: 3},
			{Value: "a difficult repair without downtime.", Weight: 2},
			{Value: "twice the usual output on the press.", Weight: 1},
		},
	},
	ledger.Teamwork: {
		verbs: []phrase{
			{Value: "helped", Weight: 3},
			{Value: "stepped in to support", Weight: 2},
			{Value: "coordinated with", Weight: 2},
		},
		objects: []phrase{
			{Value: "a struggling teammate on the packing station.", Weight: 2},
			{Value: "the neighboring team during a rush.", Weight: 2},
			{Value: "a new hire learning the machine.", Weight: 1},
		},
	},
	ledger.Sacrifice: {
		verbs: []phrase{
			{Value: "gave up", Weight: 2},
			{Value: "volunteered", Weight: 3},
			{Value: "stayed behind", Weight: 1},
		},
		objects: []phrase{
			{Value: "a break to keep the line running.", Weight: 2},
			{Value: "to cover an extra hour for an absent colleague.", Weight: 3},
			{Value: "to clean up after the shift ended.", Weight: 1},
		},
	},
	ledger.Lapse: {
		verbs: []phrase{
			{Value: "forgot", Weight: 3},
			{Value: "neglected", Weight: 2},
			{Value: "skipped", Weight: 2},
		},
		objects: []phrase{
			{Value: "the start-of-shift safety check.", Weight: 2},
			{Value: "to log the batch numbers.", Weight: 2},
			{Value: "to restock the station.", Weight: 1},
		},
	},
	ledger.Slip: {
		verbs: []phrase{
			{Value: "mislabeled", Weight: 2},
			{Value: "dropped", Weight: 2},
			{Value: "misaligned", Weight: 1},
		},
		objects: []phrase{
			{Value: "a carton of finished parts.", Weight: 2},
			{Value: "a fixture, causing rework.", Weight: 1},
			{Value: "a pallet bound for shipping.", Weight: 2},
		},
	},
	ledger.Disruption: {
		verbs: []phrase{
			{Value: "argued loudly with", Weight: 2},
			{Value: "distracted", Weight: 2},
			{Value: "walked away from", Weight: 1},
		},
		objects: []phrase{
			{Value: "coworkers during the production run.", Weight: 2},
			{Value: "the team huddle.", Weight: 1},
			{Value: "the station without handing over.", Weight: 1},
		},
	},
	ledger.Sabotage: {
		verbs: []phrase{
			{Value: "deliberately damaged", Weight: 2},
			{Value: "tampered with", Weight: 3},
			{Value: "hid", Weight: 1},
		},
		objects: []phrase{
			{Value: "a machine guard.", Weight: 1},
			{Value: "the quality samples.", Weight: 2},
			{Value: "tools needed by the next shift.", Weight: 2},
		},
	},
}

// BuildNote composes a note about name exhibiting comptype. It returns false,
// without drawing, for comptypes that have no template.
func BuildNote(rng *generic.RNG, comptype ledger.Comptype, name string) (string, bool) {
	tpl, ok := noteTemplates[comptype]
	if !ok {
		return "", false
	}
	parts := []string{
		generic.Choose(rng, discoveryPhrases),
		name,
		generic.Choose(rng, tpl.verbs),
		generic.Choose(rng, tpl.objects),
	}
	return strings.Join(parts, " "), true
}
