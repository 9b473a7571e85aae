package flow

import (
	"fmt"

	"github.com/vovakirdan/tui-chapters/internal/manifest"
)

// SceneContract is what a host displays for a journey state.
type SceneContract struct {
	Kicker           string
	Title            string
	Body             string
	ActionLabel      string
	ProgressLabel    string
	Chapter          *manifest.Chapter
	CommercialSignal string
}

type stageCopy struct {
	kicker, title, body, action, signal string
}

var stageContracts = map[Stage]stageCopy{
	StageIntro: {
		kicker: "Executive Simulation",
		title:  "17-Chapter Decision Journey",
		body:   "This flow mirrors the full manuscript and translates each chapter into boardroom-grade value signals.",
		action: "Start with Chapter 1",
		signal: "Target outcomes: book demand, qualified advisory leads, measurable trust.",
	},
	StageGateDisease: {
		kicker: "Pacing Gate · Part I Complete",
		title:  "Confirm the Cost of Inaction",
		body:   "Acknowledge that semantic drift is creating EBITDA leakage, execution variance, and governance drag.",
		action: "Acknowledge Risk Exposure",
		signal: "Commercial trigger: the buyer accepts there is a priced problem.",
	},
	StageGateArchitecture: {
		kicker: "Pacing Gate · Part III Complete",
		title:  "Confirm Architecture Fit",
		body:   "Validate that the Internal Value Chain and dual-repository model match your operating reality.",
		action: "Commit to Architecture Fit",
		signal: "Commercial trigger: move from theory to implementation intent.",
	},
	StageGateMetrics: {
		kicker: "Pacing Gate · Part IV Complete",
		title:  "Confirm Readiness Gap",
		body:   "Accept that readiness must be measured before scaling AI budget, tooling, and hiring commitments.",
		action: "Validate Readiness Gap",
		signal: "Commercial trigger: buyer sees need for structured diagnostic support.",
	},
	StageDecisionLab: {
		kicker: "Decision Lab",
		title:  "IRI -> WACC -> Enterprise Value",
		body:   "Model output: lower execution variance supports risk compression, which supports stronger valuation confidence.",
		action: "Get the Book Playbook",
		signal: "Value statement: higher cash-flow quality and multiple support.",
	},
	StageOfferBook: {
		kicker: "Offer A · Book Conversion",
		title:  "Unlock the Full 17-Chapter System",
		body:   "Use the book as the operating blueprint for language governance, valuation mechanics, and AI coordination.",
		action: "Continue to Services Option",
		signal: "Primary conversion: immediate book purchase or chapter unlock.",
	},
	StageOfferService: {
		kicker: "Offer B · Services Conversion",
		title:  "Book a Strategic Diagnostic",
		body:   "Translate your chapter insights into an engagement focused on risk reduction, KPI clarity, and valuation lift.",
		action: "Complete Commercial Path",
		signal: "Secondary conversion: qualified advisory conversation, value-first.",
	},
	StageComplete: {
		kicker: "Journey Complete",
		title:  "Chapter-Faithful Revenue Flow Ready",
		body:   "The scaffold is prepared for video capture, chapter overlays, and live offer links.",
		action: "Restart Journey",
		signal: "Both conversion paths are staged without aggressive sales behavior.",
	},
}

var missingChapter = stageCopy{
	kicker: "Chapter Missing",
	title:  "Chapter map is out of range.",
	body:   "Reset and reload manifest integrity.",
	action: "Reset Journey",
	signal: "Integrity warning: source chapter not found.",
}

// Contract projects a state onto display copy. It is total: chapter indexes
// that do not resolve produce the "Chapter Missing" contract.
func (j *Journey) Contract(s State) SceneContract {
	progress := fmt.Sprintf("%d/%d chapters completed", s.completed, j.Total())

	if s.stage == StageChapter {
		ch, ok := j.chapters.ChapterByIndex(s.chapterIndex)
		if !ok {
			return missingChapter.contract(progress)
		}
		return SceneContract{
			Kicker:           fmt.Sprintf("%s · Chapter %d", ch.PartLabel, ch.Index),
			Title:            ch.Title,
			Body:             ch.Subtitle,
			ActionLabel:      "Continue to Next Node",
			ProgressLabel:    progress,
			Chapter:          &ch,
			CommercialSignal: ch.Lens,
		}
	}

	c, ok := stageContracts[s.stage]
	if !ok {
		c = stageContracts[StageComplete]
	}
	if s.stage == StageIntro {
		progress = fmt.Sprintf("0/%d chapters completed", j.Total())
	}
	return c.contract(progress)
}

func (c stageCopy) contract(progress string) SceneContract {
	return SceneContract{
		Kicker:           c.kicker,
		Title:            c.title,
		Body:             c.body,
		ActionLabel:      c.action,
		ProgressLabel:    progress,
		CommercialSignal: c.signal,
	}
}
