// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package bpmn

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltModelSurvivesXMLRendering(t *testing.T) {
	model := CreateExecutableProcess("order-process").
		Name("Order process").
		StartEvent().
		ServiceTask("charge", "payment").
		UserTask("review").
		EndEvent().
		Done()

	data, err := model.ToXML()
	require.NoError(t, err)
	assert.Contains(t, string(data), `<bpmn:process id="order-process" name="Order process" isExecutable="true">`)
	assert.Contains(t, string(data), `<zeebe:taskDefinition type="payment" retries="3">`)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, model, parsed)
}

func TestParseFollowsSequenceFlows(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL" xmlns:zeebe="http://camunda.org/schema/zeebe/1.0">
  <process id="p" isExecutable="true">
    <endEvent id="end"/>
    <serviceTask id="task">
      <extensionElements><zeebe:taskDefinition type="work" retries="5"/></extensionElements>
    </serviceTask>
    <startEvent id="start"/>
    <sequenceFlow id="f2" sourceRef="task" targetRef="end"/>
    <sequenceFlow id="f1" sourceRef="start" targetRef="task"/>
  </process>
</definitions>`

	model, err := Parse([]byte(doc))

	require.NoError(t, err)
	require.Len(t, model.Elements, 3)
	assert.Equal(t, "start", model.Elements[0].Id)
	assert.Equal(t, Element{Id: "task", Type: ElementServiceTask, JobType: "work", Retries: 5}, model.Elements[1])
	assert.Equal(t, ElementEndEvent, model.Elements[2].Type)
}

func TestParseRejectsResourcesWithoutExecutableProcess(t *testing.T) {
	doc := `<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">
  <process id="p" isExecutable="false"><startEvent id="s"/></process>
</definitions>`

	_, err := Parse([]byte(doc))

	assert.True(t, errors.Is(err, ErrNoProcess))
}

func TestParseRejectsGateways(t *testing.T) {
	doc := `<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">
  <process id="p" isExecutable="true"><startEvent id="s"/><exclusiveGateway id="g"/></process>
</definitions>`

	_, err := Parse([]byte(doc))

	assert.True(t, errors.Is(err, ErrUnsupportedElement))
	assert.True(t, strings.HasSuffix(err.Error(), "exclusiveGateway"))
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	_, err := Parse([]byte("not xml at all <"))

	assert.Error(t, err)
}

func TestServiceTaskWithoutTaskDefinitionIsRejected(t *testing.T) {
	doc := `<definitions xmlns="http://www.omg.org/spec/BPMN/20100524/MODEL">
  <process id="p" isExecutable="true"><startEvent id="s"/><serviceTask id="t"/></process>
</definitions>`

	_, err := Parse([]byte(doc))

	assert.EqualError(t, err, `service task "t" must have a task definition type`)
}
