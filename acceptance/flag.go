// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package acceptance

import (
	"flag"
	"time"
)

var useExternalServer = flag.Bool("useExternalServer", false,
	"run the acceptance tests against a running cluster instead of the in-process emulator")

var serverAddress = flag.String("serverAddress", "http://localhost:8080",
	"REST address of the cluster when useExternalServer is set")

var username = flag.String("username", "demo",
	"user with the admin role")

var password = flag.String("password", "demo",
	"password of the admin user")

var dataAvailabilityTimeout = flag.Duration("dataAvailabilityTimeout", 15*time.Second,
	"how long to wait for written data to become searchable")
