// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"github.com/camunda/camunda-sub002/common/log/tag"
)

// Logger is our abstraction for logging
// Usage examples:
//
//	 import "github.com/camunda/camunda-sub002/common/log/tag"
//	 1) logger = logger.WithTags(
//	         tag.Service("api"),
//	         tag.TenantId("tenant-a"))
//	    logger.Info("tenant created")
//	 2) logger.Info("batch operation item processed",
//	         tag.BatchOperationKey("2251799813685250"),
//	         tag.ProcessInstanceKey("2251799813685251"))
//	 Note: msg should be static, it is not recommended to use fmt.Sprintf() for msg.
//	       Anything dynamic should be tagged.
type Logger interface {
	Debug(msg string, tags ...tag.Tag)
	Info(msg string, tags ...tag.Tag)
	Warn(msg string, tags ...tag.Tag)
	Error(msg string, tags ...tag.Tag)
	Fatal(msg string, tags ...tag.Tag)
	WithTags(tags ...tag.Tag) Logger
}
