// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package bpmn

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
)

const (
	namespaceBPMN  = "http://www.omg.org/spec/BPMN/20100524/MODEL"
	namespaceZeebe = "http://camunda.org/schema/zeebe/1.0"
)

var (
	// ErrNoProcess is returned for a resource without an executable process
	ErrNoProcess = errors.New("the resource does not contain an executable process")
	// ErrUnsupportedElement is returned for elements outside of the linear subset
	ErrUnsupportedElement = errors.New("unsupported BPMN element")
)

// output structs use prefixed names, encoding/xml does not emit namespace prefixes itself
type (
	xmlDefinitionsOut struct {
		XMLName         xml.Name      `xml:"bpmn:definitions"`
		XmlnsBPMN       string        `xml:"xmlns:bpmn,attr"`
		XmlnsZeebe      string        `xml:"xmlns:zeebe,attr"`
		Id              string        `xml:"id,attr"`
		TargetNamespace string        `xml:"targetNamespace,attr"`
		Process         xmlProcessOut `xml:"bpmn:process"`
	}

	xmlProcessOut struct {
		Id           string `xml:"id,attr"`
		Name         string `xml:"name,attr,omitempty"`
		IsExecutable bool   `xml:"isExecutable,attr"`
		Nodes        []any
	}

	xmlNodeOut struct {
		XMLName           xml.Name
		Id                string            `xml:"id,attr"`
		Name              string            `xml:"name,attr,omitempty"`
		ExtensionElements *xmlExtensionsOut `xml:"bpmn:extensionElements,omitempty"`
	}

	xmlExtensionsOut struct {
		TaskDefinition xmlTaskDefinitionOut `xml:"zeebe:taskDefinition"`
	}

	xmlTaskDefinitionOut struct {
		Type    string `xml:"type,attr"`
		Retries string `xml:"retries,attr,omitempty"`
	}

	xmlSequenceFlowOut struct {
		XMLName   xml.Name `xml:"bpmn:sequenceFlow"`
		Id        string   `xml:"id,attr"`
		SourceRef string   `xml:"sourceRef,attr"`
		TargetRef string   `xml:"targetRef,attr"`
	}
)

// ToXML renders the model as a deployable BPMN 2.0 document
func (m *Model) ToXML() ([]byte, error) {
	if m.ProcessId == "" {
		return nil, fmt.Errorf("process id is required")
	}
	process := xmlProcessOut{Id: m.ProcessId, Name: m.Name, IsExecutable: true}
	for i, e := range m.Elements {
		node := xmlNodeOut{
			XMLName: xml.Name{Local: "bpmn:" + string(e.Type)},
			Id:      e.Id,
			Name:    e.Name,
		}
		if e.Type == ElementServiceTask {
			def := xmlTaskDefinitionOut{Type: e.JobType}
			if e.Retries > 0 {
				def.Retries = strconv.Itoa(e.Retries)
			}
			node.ExtensionElements = &xmlExtensionsOut{TaskDefinition: def}
		}
		process.Nodes = append(process.Nodes, node)
		if i > 0 {
			process.Nodes = append(process.Nodes, xmlSequenceFlowOut{
				Id:        fmt.Sprintf("flow_%v_%v", m.Elements[i-1].Id, e.Id),
				SourceRef: m.Elements[i-1].Id,
				TargetRef: e.Id,
			})
		}
	}

	out, err := xml.MarshalIndent(xmlDefinitionsOut{
		XmlnsBPMN:       namespaceBPMN,
		XmlnsZeebe:      namespaceZeebe,
		Id:              "definitions_" + m.ProcessId,
		TargetNamespace: "http://bpmn.io/schema/bpmn",
		Process:         process,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// input structs match local names, so prefixed and default-namespace documents both parse
type (
	xmlDefinitionsIn struct {
		Processes []xmlProcessIn `xml:"process"`
	}

	xmlProcessIn struct {
		Id           string      `xml:"id,attr"`
		Name         string      `xml:"name,attr"`
		IsExecutable string      `xml:"isExecutable,attr"`
		Children     []xmlNodeIn `xml:",any"`
	}

	xmlNodeIn struct {
		XMLName           xml.Name
		Id                string `xml:"id,attr"`
		Name              string `xml:"name,attr"`
		SourceRef         string `xml:"sourceRef,attr"`
		TargetRef         string `xml:"targetRef,attr"`
		ExtensionElements struct {
			TaskDefinition *struct {
				Type    string `xml:"type,attr"`
				Retries string `xml:"retries,attr"`
			} `xml:"taskDefinition"`
		} `xml:"extensionElements"`
	}
)

// Parse reads the first executable process of a BPMN document.
// Elements are ordered by following the sequence flows from the start event.
func Parse(data []byte) (*Model, error) {
	var defs xmlDefinitionsIn
	if err := xml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("invalid BPMN document: %w", err)
	}
	for _, p := range defs.Processes {
		if p.IsExecutable != "true" {
			continue
		}
		return toModel(p)
	}
	return nil, ErrNoProcess
}

func toModel(p xmlProcessIn) (*Model, error) {
	model := &Model{ProcessId: p.Id, Name: p.Name}
	if model.ProcessId == "" {
		return nil, fmt.Errorf("%w: process without id", ErrNoProcess)
	}

	nodes := map[string]Element{}
	var order []string
	next := map[string]string{}
	for _, child := range p.Children {
		switch local := child.XMLName.Local; local {
		case "sequenceFlow":
			if _, ok := next[child.SourceRef]; ok {
				return nil, fmt.Errorf("%w: element %q has more than one outgoing flow", ErrUnsupportedElement, child.SourceRef)
			}
			next[child.SourceRef] = child.TargetRef
		case "extensionElements", "documentation", "laneSet", "textAnnotation", "association":
		case string(ElementStartEvent), string(ElementServiceTask), string(ElementUserTask), string(ElementEndEvent):
			e := Element{Id: child.Id, Name: child.Name, Type: ElementType(local)}
			if e.Type == ElementServiceTask {
				def := child.ExtensionElements.TaskDefinition
				if def == nil || def.Type == "" {
					return nil, fmt.Errorf("service task %q must have a task definition type", child.Id)
				}
				e.JobType = def.Type
				e.Retries = 3
				if def.Retries != "" {
					retries, err := strconv.Atoi(def.Retries)
					if err != nil {
						return nil, fmt.Errorf("service task %q has invalid retries %q", child.Id, def.Retries)
					}
					e.Retries = retries
				}
			}
			nodes[e.Id] = e
			order = append(order, e.Id)
		default:
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedElement, local)
		}
	}

	if len(next) == 0 {
		for _, id := range order {
			model.Elements = append(model.Elements, nodes[id])
		}
		return model, nil
	}

	var start string
	for _, id := range order {
		if nodes[id].Type == ElementStartEvent {
			start = id
			break
		}
	}
	if start == "" {
		return nil, fmt.Errorf("process %q must have a start event", p.Id)
	}
	visited := map[string]bool{}
	for id := start; id != ""; id = next[id] {
		e, ok := nodes[id]
		if !ok {
			return nil, fmt.Errorf("sequence flow targets unknown element %q", id)
		}
		if visited[id] {
			return nil, fmt.Errorf("%w: loop at element %q", ErrUnsupportedElement, id)
		}
		visited[id] = true
		model.Elements = append(model.Elements, e)
	}
	return model, nil
}
