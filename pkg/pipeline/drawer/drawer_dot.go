package drawer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-compose/pkg/pipeline/measure"
	"github.com/askiada/go-compose/pkg/pipeline/model"
)

// DOTDrawer is a drawer that creates a Graphviz DOT file with the pipeline graph.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	order       []string
	types       map[string]string
	dotFileName string
}

// NewDOTDrawer creates a new DOT drawer writing to dotFileName.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	return &DOTDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
		types:       make(map[string]string),
	}
}

// AddStep adds a step to the pipeline graph.
func (d *DOTDrawer) AddStep(name, typeName string) error {
	err := d.graph.AddVertex(name)
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	d.order = append(d.order, name)
	d.types[name] = typeName

	return nil
}

// AddLink adds a link between parent and children steps.
func (d *DOTDrawer) AddLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	return nil
}

// Draw creates a DOT file with the pipeline graph.
func (d *DOTDrawer) Draw() error {
	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer file.Close()

	err = d.Render(file)
	if err != nil {
		return errors.Wrapf(err, "unable to create dot file %s", d.dotFileName)
	}

	return nil
}

// Render writes the pipeline graph in DOT format. Steps are listed in the order they were added.
func (d *DOTDrawer) Render(wrt io.Writer) error {
	desc, err := d.generateDOT()
	if err != nil {
		return errors.Wrap(err, "failed to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

// SetTotalTime sets the total time for the step.
func (d *DOTDrawer) SetTotalTime(stepName string, startTime time.Time) error {
	_, properties, err := d.graph.VertexWithProperties(stepName)
	if err != nil {
		return errors.Wrapf(err, "unable to get %s vertex properties", stepName)
	}

	properties.Attributes["xlabel"] = "total: " + time.Since(startTime).String()

	return nil
}

const maxRGB = 240

// flowDuration is the average time a step takes to hand its output to the next step.
func flowDuration(mt measure.Metric) time.Duration {
	for _, op := range []model.Operation{model.TransformOperation, model.PredictOperation, model.PredictProbaOperation} {
		if avg := mt.AVGDuration(op); avg > 0 {
			return avg
		}
	}

	return 0
}

// AddMeasure adds measure to drawer. Edges are coloured from blue to red by the average duration of the step
// they leave.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	allElapsed := make(map[time.Duration]string)
	sortedElapsed := []time.Duration{}

	for _, mt := range msr.AllMetrics() {
		elapsed := flowDuration(mt)
		if elapsed == 0 {
			continue
		}
		if _, ok := allElapsed[elapsed]; ok {
			continue
		}
		allElapsed[elapsed] = ""
		sortedElapsed = append(sortedElapsed, elapsed)
	}

	sort.Slice(sortedElapsed, func(i, j int) bool {
		return sortedElapsed[i] > sortedElapsed[j]
	})

	if len(sortedElapsed) > 0 {
		maxValue := sortedElapsed[0]
		minValue := sortedElapsed[len(sortedElapsed)-1]

		for curr := range allElapsed {
			fraction := 1.0
			if maxValue > minValue {
				fraction = float64(curr-minValue) / float64(maxValue-minValue)
			}

			red := maxRGB * fraction
			blue := -maxRGB*fraction + maxRGB

			colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
			if err != nil {
				return errors.Wrap(err, "unable to get colour")
			}

			allElapsed[curr] = colour.ToHEX().String()
		}
	}

	err := d.updateMetrics(msr, allElapsed)
	if err != nil {
		return errors.Wrap(err, "unable to update metrics")
	}

	return nil
}

func (d *DOTDrawer) updateMetrics(msr measure.Measure, allElapsed map[time.Duration]string) error {
	adjacencyMap, err := d.graph.AdjacencyMap()
	if err != nil {
		return errors.Wrap(err, "unable to get adjacency map")
	}

	for name, mt := range msr.AllMetrics() {
		_, properties, err := d.graph.VertexWithProperties(name)
		if err != nil {
			return errors.Wrap(err, "unable to get vertex properties")
		}

		labels := []string{}
		for _, op := range []model.Operation{
			model.FitOperation, model.TransformOperation, model.PredictOperation, model.PredictProbaOperation,
		} {
			if avg := mt.AVGDuration(op); avg != 0 {
				labels = append(labels, fmt.Sprintf("%s: %s", op, avg))
			}
		}
		if len(labels) > 0 {
			properties.Attributes["xlabel"] = strings.Join(labels, ", ")
		}

		elapsed := flowDuration(mt)
		if elapsed == 0 {
			continue
		}
		for target := range adjacencyMap[name] {
			err := d.graph.UpdateEdge(name, target,
				graph.EdgeAttribute("label", elapsed.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", allElapsed[elapsed]), //nolint
			)
			if err != nil {
				return errors.Wrap(err, "unable to update edge")
			}
		}
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func (d *DOTDrawer) generateDOT() (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   map[string]string{"rankdir": "LR"},
		EdgeOperator: "->",
		Statements:   make([]statement, 0),
	}

	adjacencyMap, err := d.graph.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	position := make(map[string]int, len(d.order))
	for i, name := range d.order {
		position[name] = i
	}

	for _, vertex := range d.order {
		_, sourceProperties, err := d.graph.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		attributes := make(map[string]string, len(sourceProperties.Attributes))
		for k, v := range sourceProperties.Attributes {
			attributes[k] = v
		}

		title := vertex
		if typeName := d.types[vertex]; typeName != "" {
			title = fmt.Sprintf("%s <BR /> <I>%s</I>", vertex, typeName)
		}
		htmlAttributes := map[string]string{"label": fmt.Sprintf("<%s>", title)}
		if xlabel, ok := attributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, title, xlabel)

			delete(attributes, "xlabel")
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: attributes,
			HTMLAttributes:   htmlAttributes,
		})

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}
		sort.Slice(targets, func(i, j int) bool {
			return position[targets[i]] < position[targets[j]]
		})

		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "failed to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
