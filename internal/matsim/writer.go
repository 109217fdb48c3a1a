package matsim

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/blagoySimandov/trafficjam/internal/domain"
)

const (
	header  = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"
	doctype = "<!DOCTYPE population SYSTEM \"http://www.matsim.org/files/dtd/population_v6.dtd\">\n"

	// Coordinate precision in emitted attributes.
	coordinateDecimals = 4
)

// Writer streams a MATSim population document: a root element carrying the
// coordinate reference system, followed by one person element per agent with
// demographic attributes and the selected plan.
//
// The writer performs no reprojection; coordinates are emitted in the CRS
// supplied by the caller.
type Writer struct {
	enc         *xml.Encoder
	out         io.Writer
	crs         string
	started     bool
	personCount int
}

func NewWriter(out io.Writer, crs string) *Writer {
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	return &Writer{enc: enc, out: out, crs: crs}
}

func (w *Writer) start() error {
	if w.started {
		return nil
	}

	if _, err := io.WriteString(w.out, header+doctype); err != nil {
		return fmt.Errorf("write population: header: %w", err)
	}

	if err := w.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: "population"}}); err != nil {
		return fmt.Errorf("write population: open root: %w", err)
	}
	if err := w.writeAttributes([]docAttribute{
		{Name: "coordinateReferenceSystem", Class: "java.lang.String", Value: w.crs},
	}); err != nil {
		return err
	}

	w.started = true
	return nil
}

// A single MATSim object attribute (typed key/value element).
type docAttribute struct {
	Name  string
	Class string
	Value string
}

func (w *Writer) writeAttributes(attrs []docAttribute) error {
	open := xml.StartElement{Name: xml.Name{Local: "attributes"}}
	if err := w.enc.EncodeToken(open); err != nil {
		return fmt.Errorf("write population: open attributes: %w", err)
	}

	for _, a := range attrs {
		el := xml.StartElement{
			Name: xml.Name{Local: "attribute"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "name"}, Value: a.Name},
				{Name: xml.Name{Local: "class"}, Value: a.Class},
			},
		}
		if err := w.enc.EncodeToken(el); err != nil {
			return fmt.Errorf("write population: attribute %q: %w", a.Name, err)
		}
		if err := w.enc.EncodeToken(xml.CharData(a.Value)); err != nil {
			return fmt.Errorf("write population: attribute %q value: %w", a.Name, err)
		}
		if err := w.enc.EncodeToken(el.End()); err != nil {
			return fmt.Errorf("write population: attribute %q close: %w", a.Name, err)
		}
	}

	if err := w.enc.EncodeToken(open.End()); err != nil {
		return fmt.Errorf("write population: close attributes: %w", err)
	}
	return nil
}

// WritePerson appends one agent and its plan to the document.
// Exactly len(Activities)-1 legs are emitted, alternating activity/leg.
func (w *Writer) WritePerson(agent domain.Agent, plan *domain.DailyPlan) error {
	if err := w.start(); err != nil {
		return err
	}

	profile := agent.Profile()

	employed := false
	if adult, ok := agent.(*domain.Adult); ok {
		employed = adult.Employed
	}

	person := xml.StartElement{
		Name: xml.Name{Local: "person"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "id"}, Value: profile.ID}},
	}
	if err := w.enc.EncodeToken(person); err != nil {
		return fmt.Errorf("write population: person %q: %w", profile.ID, err)
	}

	if err := w.writeAttributes([]docAttribute{
		{Name: "age", Class: "java.lang.Integer", Value: strconv.Itoa(profile.Age)},
		{Name: "employed", Class: "java.lang.Boolean", Value: strconv.FormatBool(employed)},
		{Name: "has_car", Class: "java.lang.Boolean", Value: strconv.FormatBool(profile.HasCar)},
	}); err != nil {
		return err
	}

	planEl := xml.StartElement{
		Name: xml.Name{Local: "plan"},
		Attr: []xml.Attr{{Name: xml.Name{Local: "selected"}, Value: "yes"}},
	}
	if err := w.enc.EncodeToken(planEl); err != nil {
		return fmt.Errorf("write population: person %q plan: %w", profile.ID, err)
	}

	for i, act := range plan.Activities {
		if err := w.writeActivity(act); err != nil {
			return fmt.Errorf("write population: person %q activity %d: %w", profile.ID, i, err)
		}
		if i < len(plan.Legs) {
			leg := xml.StartElement{
				Name: xml.Name{Local: "leg"},
				Attr: []xml.Attr{{Name: xml.Name{Local: "mode"}, Value: string(plan.Legs[i].Mode)}},
			}
			if err := w.enc.EncodeToken(leg); err != nil {
				return fmt.Errorf("write population: person %q leg %d: %w", profile.ID, i, err)
			}
			if err := w.enc.EncodeToken(leg.End()); err != nil {
				return fmt.Errorf("write population: person %q leg %d close: %w", profile.ID, i, err)
			}
		}
	}

	if err := w.enc.EncodeToken(planEl.End()); err != nil {
		return fmt.Errorf("write population: person %q plan close: %w", profile.ID, err)
	}
	if err := w.enc.EncodeToken(person.End()); err != nil {
		return fmt.Errorf("write population: person %q close: %w", profile.ID, err)
	}

	w.personCount++
	return nil
}

func (w *Writer) writeActivity(act domain.Activity) error {
	attrs := []xml.Attr{
		{Name: xml.Name{Local: "type"}, Value: string(act.Type)},
		{Name: xml.Name{Local: "x"}, Value: formatCoordinate(act.Location.X())},
		{Name: xml.Name{Local: "y"}, Value: formatCoordinate(act.Location.Y())},
	}
	if act.EndTime != nil {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "end_time"}, Value: act.EndTime.String()})
	}
	if act.Duration != nil {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "dur"}, Value: act.Duration.String()})
	}

	el := xml.StartElement{Name: xml.Name{Local: "activity"}, Attr: attrs}
	if err := w.enc.EncodeToken(el); err != nil {
		return err
	}
	return w.enc.EncodeToken(el.End())
}

// Close terminates the document and flushes the encoder.
func (w *Writer) Close() error {
	if err := w.start(); err != nil {
		return err
	}

	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "population"}}); err != nil {
		return fmt.Errorf("write population: close root: %w", err)
	}
	if err := w.enc.Flush(); err != nil {
		return fmt.Errorf("write population: flush: %w", err)
	}

	if _, err := io.WriteString(w.out, "\n"); err != nil {
		return fmt.Errorf("write population: trailing newline: %w", err)
	}
	return nil
}

// PersonCount returns the number of persons written so far.
func (w *Writer) PersonCount() int { return w.personCount }

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', coordinateDecimals, 64)
}
