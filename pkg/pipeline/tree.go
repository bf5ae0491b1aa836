package pipeline

import (
	"strconv"

	"github.com/curricle/contentkit/pkg/slug"
)

// NodeKind tags the variant of a content node.
type NodeKind string

const (
	NodeDocument NodeKind = "document"
	NodeCourse   NodeKind = "course"
	NodeUnit     NodeKind = "unit"
	NodeTopic    NodeKind = "topic"
	NodeProblem  NodeKind = "problem"
	NodeStep     NodeKind = "step"
	NodeAnswer   NodeKind = "answer"
)

// Node is one node of the output document. IDs are derived from the slug
// path of the node's ancestry, so the same source always yields the same ids
// and downstream consumers can diff documents between runs. Children keep
// first-seen source order; nothing is sorted.
type Node struct {
	Kind NodeKind `json:"kind"`
	ID   string   `json:"id"`

	// Name is the declared identifier or display name: the course, unit, or
	// topic name, or the problem/step id as written in the sheet.
	Name string `json:"name,omitempty"`

	Text        string   `json:"text,omitempty"`
	AnswerValue any      `json:"answerValue,omitempty"`
	AnswerType  string   `json:"answerType,omitempty"`
	Hints       string   `json:"hints,omitempty"`
	Difficulty  *float64 `json:"difficulty,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// Stats counts the nodes of the built document by kind.
type Stats struct {
	Courses  int `json:"courses"`
	Units    int `json:"units"`
	Topics   int `json:"topics"`
	Problems int `json:"problems"`
	Steps    int `json:"steps"`
	Answers  int `json:"answers"`
}

// segment slugs one id-path segment. Names that slug away entirely (blank
// grouping columns, punctuation-only names) fall back to a fixed literal so
// that every path segment stays non-empty and paths of different depths
// cannot collide.
func segment(name string) string {
	if s := slug.Make(name); s != "" {
		return s
	}
	return "default"
}

// buildTree assembles the document from the validator's grouping. Pruned
// problems and steps are left out together with everything beneath them;
// their siblings are unaffected. Grouping nodes (course, unit, topic) are
// keyed by declared name — identical names across rows address the same
// node, and first mention decides sibling order.
func buildTree(a analysis) (*Node, Stats) {
	root := &Node{Kind: NodeDocument, ID: "root"}
	groups := make(map[string]*Node)
	var stats Stats

	// ensureGroup returns the child of parent declared under the given name,
	// creating it on first mention. Grouping nodes are keyed by declared name
	// path, not by slug, so "Unit 1" and "Unit-1" stay distinct nodes even
	// though their slugs collide (the second gets a disambiguated id).
	ensureGroup := func(parent *Node, kind NodeKind, nameKey, name string, counter *int) *Node {
		if n, ok := groups[nameKey]; ok {
			return n
		}
		id := segment(name)
		if parent.Kind != NodeDocument {
			id = parent.ID + "/" + id
		}
		n := &Node{Kind: kind, ID: childID(parent, id), Name: name}
		groups[nameKey] = n
		parent.Children = append(parent.Children, n)
		*counter++
		return n
	}

	for _, ps := range a.problems {
		if ps.pruned {
			continue
		}
		r := ps.row

		courseKey := r.Course
		course := ensureGroup(root, NodeCourse, courseKey, r.Course, &stats.Courses)

		unitKey := courseKey + keySep + r.Unit
		unit := ensureGroup(course, NodeUnit, unitKey, r.Unit, &stats.Units)

		topicKey := unitKey + keySep + r.Topic
		topic := ensureGroup(unit, NodeTopic, topicKey, r.Topic, &stats.Topics)

		problem := &Node{
			Kind:       NodeProblem,
			ID:         childID(topic, topic.ID+"/"+segment(r.ProblemID)),
			Name:       r.ProblemID,
			Text:       r.Text,
			Hints:      r.Hints,
			Difficulty: r.Difficulty,
		}
		topic.Children = append(topic.Children, problem)
		stats.Problems++

		for _, ss := range ps.steps {
			if ss.pruned {
				continue
			}
			sr := ss.row

			step := &Node{
				Kind:       NodeStep,
				ID:         childID(problem, problem.ID+"/"+segment(sr.StepID)),
				Name:       sr.StepID,
				Text:       sr.Text,
				Hints:      sr.Hints,
				Difficulty: sr.Difficulty,
			}
			problem.Children = append(problem.Children, step)
			stats.Steps++

			for i, ar := range ss.answers {
				answer := &Node{
					Kind:        NodeAnswer,
					ID:          step.ID + "/answer-" + strconv.Itoa(i+1),
					Text:        ar.Text,
					AnswerValue: ar.AnswerValue,
					AnswerType:  ar.AnswerType,
					Hints:       ar.Hints,
				}
				step.Children = append(step.Children, answer)
				stats.Answers++
			}
		}
	}

	return root, stats
}

// childID disambiguates slug collisions between siblings: distinct declared
// ids like "P 1" and "P-1" slug to the same segment, and sibling ids must be
// unique. The suffix depends only on how many colliding siblings precede the
// node in source order, so unrelated rows cannot disturb it.
func childID(parent *Node, id string) string {
	taken := func(candidate string) bool {
		for _, c := range parent.Children {
			if c.ID == candidate {
				return true
			}
		}
		return false
	}

	if !taken(id) {
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if !taken(candidate) {
			return candidate
		}
	}
}
