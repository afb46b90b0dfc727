// Package surface renders the dashboard regions into revealable nodes.
//
// A Surface owns one region and moves between three states: Loading,
// Content and Error. Entering Loading clears whatever was rendered before;
// only a new fetch cycle goes back to Loading.
package surface

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/quiniela/internal/apiclient"
	"github.com/tinytelemetry/quiniela/internal/model"
	"github.com/tinytelemetry/quiniela/internal/reveal"
)

// State is the render state of a surface.
type State int

const (
	StateLoading State = iota
	StateContent
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateContent:
		return "content"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Kind classifies a rendered node.
type Kind int

const (
	KindLoading Kind = iota
	KindError
	KindPlaceholder
	KindCard
	KindStat
	KindChart
	KindEntry
	KindDisclaimer
)

// Node is one child of a section.
type Node struct {
	reveal.Node
	Kind   Kind
	Text   string
	render func(width int) string
}

// Render draws the node at width. A node waiting for its reveal keeps its
// height but shows nothing.
func (n *Node) Render(width int) string {
	out := n.render(width)
	if n.Tagged && !n.Revealed {
		h := lipgloss.Height(out)
		return strings.TrimSuffix(strings.Repeat(strings.Repeat(" ", max(width, 0))+"\n", h), "\n")
	}
	return out
}

// Section is a named rendering container.
type Section struct {
	ID       string
	Title    string
	Subtitle string
	Nodes    []*Node
}

// Surface is the render target of one region.
type Surface struct {
	region   model.Region
	animator *reveal.Animator
	state    State
	message  string
	sections []*Section
	gen      int
	now      func() time.Time
}

// New creates a surface for region in the Loading state with empty sections.
func New(region model.Region, animator *reveal.Animator) *Surface {
	s := &Surface{region: region, animator: animator, now: time.Now}
	for _, id := range region.SectionIDs() {
		s.sections = append(s.sections, &Section{ID: id, Title: sectionTitle(id)})
	}
	return s
}

func (s *Surface) Region() model.Region { return s.region }
func (s *Surface) State() State         { return s.state }
func (s *Surface) Message() string      { return s.message }
func (s *Surface) Sections() []*Section { return s.sections }
func (s *Surface) Generation() int      { return s.gen }

// Section returns the container with id, or nil.
func (s *Surface) Section(id string) *Section {
	for _, sec := range s.sections {
		if sec.ID == id {
			return sec
		}
	}
	return nil
}

// EnterLoading replaces every section's content with a single loading
// placeholder. Calling it while already loading changes nothing.
func (s *Surface) EnterLoading() {
	if s.state == StateLoading && s.hasOnly(KindLoading) {
		return
	}
	s.replace(func(sec *Section) []*Node {
		return []*Node{{Kind: KindLoading, Text: "Loading...", render: s.renderLoading}}
	})
	s.state = StateLoading
	s.message = ""
}

// EnterError replaces the content with one error node carrying message
// verbatim in the region's first section.
func (s *Surface) EnterError(message string) {
	s.replace(func(sec *Section) []*Node {
		if sec != s.sections[0] {
			return nil
		}
		text := "Error: " + message
		return []*Node{{Kind: KindError, Text: text, render: func(width int) string {
			return errorStyle.Width(max(width, 1)).Render(text)
		}}}
	})
	s.state = StateError
	s.message = message
}

// EnterNoData renders the "no data" placeholder in every section. Used when
// the payload does not have the expected shape.
func (s *Surface) EnterNoData() {
	s.replace(func(sec *Section) []*Node {
		return []*Node{placeholder(noDataText(sec.ID))}
	})
	s.stageAll()
	s.state = StateContent
	s.message = ""
}

// EnterContent renders data with the region renderer and stages every
// section for reveal.
func (s *Surface) EnterContent(data any) error {
	var build func(sec *Section) []*Node
	switch s.region {
	case model.RegionCurrent:
		results, ok := data.(model.CurrentResults)
		if !ok {
			return s.wrongType(data)
		}
		build = func(*Section) []*Node { return currentNodes(results) }
	case model.RegionMonthly:
		stats, ok := data.(*model.MonthlyStats)
		if !ok {
			return s.wrongType(data)
		}
		if stats == nil {
			s.EnterNoData()
			return nil
		}
		build = func(sec *Section) []*Node { return monthlyNodes(sec, stats) }
	case model.RegionRecommendations:
		recs, ok := data.(*model.Recommendations)
		if !ok {
			return s.wrongType(data)
		}
		build = func(*Section) []*Node { return recommendationNodes(recs) }
	default:
		return fmt.Errorf("surface: unknown region %d", s.region)
	}

	s.replace(build)
	s.stageAll()
	s.state = StateContent
	s.message = ""
	return nil
}

// Apply moves the surface to the state matching a fetch outcome.
// Application errors show the server text, shape errors the no-data
// placeholder, anything else a generic failure for the region.
func (s *Surface) Apply(data any, err error) {
	if err == nil {
		if cerr := s.EnterContent(data); cerr != nil {
			s.EnterNoData()
		}
		return
	}

	var appErr *apiclient.ApplicationError
	var shapeErr *apiclient.DataShapeError
	switch {
	case errors.As(err, &appErr):
		s.EnterError(appErr.Message)
	case errors.As(err, &shapeErr):
		s.EnterNoData()
	default:
		s.EnterError(FailureMessage(s.region))
	}
}

// FailureMessage is shown when a region could not be fetched at all.
func FailureMessage(r model.Region) string {
	return "Could not load " + strings.ToLower(r.Title())
}

// Reveal marks the node with id as revealed. It reports false when the node
// belongs to a render that has since been replaced.
func (s *Surface) Reveal(id string) bool {
	for _, sec := range s.sections {
		for _, n := range sec.Nodes {
			if n.ID == id {
				n.Revealed = true
				return true
			}
		}
	}
	return false
}

// Pending reports whether any node is still waiting to be revealed.
func (s *Surface) Pending() bool {
	for _, sec := range s.sections {
		for _, n := range sec.Nodes {
			if n.Tagged && !n.Revealed {
				return true
			}
		}
	}
	return false
}

// Layout renders the surface at width and returns the rows each node
// occupies, relative to the first row of the output.
func (s *Surface) Layout(width int) (string, []reveal.Span) {
	var b strings.Builder
	var spans []reveal.Span
	row := 0
	write := func(block string) {
		if row > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(block)
		row += lipgloss.Height(block)
	}

	for i, sec := range s.sections {
		if i > 0 {
			write("")
		}
		title := sectionTitleStyle.Render(sec.Title)
		if sec.Subtitle != "" {
			title += " " + sectionSubtitleStyle.Render(sec.Subtitle)
		}
		write(title)
		for _, n := range sec.Nodes {
			out := n.Render(width)
			spans = append(spans, reveal.Span{ID: n.ID, Top: row, Height: lipgloss.Height(out)})
			write(out)
		}
	}
	return b.String(), spans
}

// View renders the surface without layout information.
func (s *Surface) View(width int) string {
	out, _ := s.Layout(width)
	return out
}

func (s *Surface) replace(build func(sec *Section) []*Node) {
	s.gen++
	for _, sec := range s.sections {
		s.animator.Release(nodeStates(sec.Nodes))
		sec.Subtitle = ""
		nodes := build(sec)
		for i, n := range nodes {
			n.ID = fmt.Sprintf("%s#%d.%d", sec.ID, s.gen, i)
		}
		sec.Nodes = nodes
	}
}

func (s *Surface) stageAll() {
	for _, sec := range s.sections {
		s.animator.Stage(nodeStates(sec.Nodes))
	}
}

func (s *Surface) hasOnly(kind Kind) bool {
	for _, sec := range s.sections {
		if len(sec.Nodes) != 1 || sec.Nodes[0].Kind != kind {
			return false
		}
	}
	return true
}

func (s *Surface) wrongType(data any) error {
	err := fmt.Errorf("surface: %s cannot render %T", s.region, data)
	s.EnterNoData()
	return err
}

func (s *Surface) renderLoading(width int) string {
	return placeholderStyle.Render(SpinnerFrame(s.now()) + " Loading...")
}

func nodeStates(nodes []*Node) []*reveal.Node {
	out := make([]*reveal.Node, len(nodes))
	for i, n := range nodes {
		out[i] = &n.Node
	}
	return out
}

func placeholder(text string) *Node {
	return &Node{Kind: KindPlaceholder, Text: text, render: func(width int) string {
		return placeholderStyle.Width(max(width, 1)).Render(text)
	}}
}

func sectionTitle(id string) string {
	switch id {
	case "current-results":
		return "Current Results"
	case "monthly-stats":
		return "Monthly Statistics"
	case "frequent-numbers":
		return "Most Frequent Numbers"
	case "recommendations":
		return "Recommendations"
	default:
		return id
	}
}

func noDataText(sectionID string) string {
	switch sectionID {
	case "frequent-numbers":
		return "No frequent numbers available"
	case "recommendations":
		return "No recommendations available"
	default:
		return "No data available"
	}
}
