// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

// Package bpmn builds and reads the linear subset of BPMN 2.0 process models:
// a start event, service and user tasks in sequence, and an end event.
package bpmn

import "fmt"

type ElementType string

const (
	ElementStartEvent  ElementType = "startEvent"
	ElementServiceTask ElementType = "serviceTask"
	ElementUserTask    ElementType = "userTask"
	ElementEndEvent    ElementType = "endEvent"
)

// Element is a flow node of a process
type Element struct {
	Id   string
	Name string
	Type ElementType
	// JobType is the zeebe task definition type of a service task
	JobType string
	// Retries of the jobs created by a service task
	Retries int
}

// Model is an executable process, its elements in execution order
type Model struct {
	ProcessId string
	Name      string
	Elements  []Element
}

// Element returns the element with the given id
func (m *Model) Element(id string) (Element, bool) {
	for _, e := range m.Elements {
		if e.Id == id {
			return e, true
		}
	}
	return Element{}, false
}

// ProcessBuilder is a fluent builder of a linear process
type ProcessBuilder struct {
	model   *Model
	counter int
}

func CreateExecutableProcess(processId string) *ProcessBuilder {
	return &ProcessBuilder{model: &Model{ProcessId: processId}}
}

func (b *ProcessBuilder) Name(name string) *ProcessBuilder {
	b.model.Name = name
	return b
}

func (b *ProcessBuilder) StartEvent() *ProcessBuilder {
	return b.add(Element{Id: b.nextId("start"), Type: ElementStartEvent})
}

func (b *ProcessBuilder) ServiceTask(id, jobType string) *ProcessBuilder {
	return b.add(Element{Id: id, Type: ElementServiceTask, JobType: jobType, Retries: 3})
}

func (b *ProcessBuilder) UserTask(id string) *ProcessBuilder {
	return b.add(Element{Id: id, Type: ElementUserTask})
}

func (b *ProcessBuilder) EndEvent() *ProcessBuilder {
	return b.add(Element{Id: b.nextId("end"), Type: ElementEndEvent})
}

// Done returns the built model
func (b *ProcessBuilder) Done() *Model {
	return b.model
}

func (b *ProcessBuilder) add(e Element) *ProcessBuilder {
	b.model.Elements = append(b.model.Elements, e)
	return b
}

func (b *ProcessBuilder) nextId(prefix string) string {
	b.counter++
	return fmt.Sprintf("%v_%v", prefix, b.counter)
}
