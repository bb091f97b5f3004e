// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

type TopologyResponse struct {
	Brokers           []BrokerInfo `json:"brokers"`
	ClusterSize       int          `json:"clusterSize"`
	PartitionsCount   int          `json:"partitionsCount"`
	ReplicationFactor int          `json:"replicationFactor"`
	GatewayVersion    string       `json:"gatewayVersion"`
}

type BrokerInfo struct {
	NodeId     int         `json:"nodeId"`
	Host       string      `json:"host"`
	Port       int         `json:"port"`
	Partitions []Partition `json:"partitions"`
	Version    string      `json:"version"`
}

type Partition struct {
	PartitionId int    `json:"partitionId"`
	Role        string `json:"role"`
	Health      string `json:"health"`
}
