// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package toolsrs realizes the tools resource, allowing the utility
// executable paths of managed database servers to be resolved through
// the REST APIs by delegation to the tools use case.
package toolsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin/serdser"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/toolsuc"
)

type resource struct {
	tools *toolsuc.UseCase
}

// Register instantiates a resource adapting the tools use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/pgdesk/v1/tools/utility/:stype/:op
//     with a numeric version query parameter, in order to resolve
//     the utility executable path which implements the op logical
//     operation for a server of the :stype type.
func Register(r *gin.RouterGroup, tools *toolsuc.UseCase) {
	rs := &resource{tools: tools}
	r.GET("tools/utility/:stype/:op", rs.ResolveUtility)
}

type resolveUtilityReq struct {
	// Version is the numeric server version, as reported by the
	// PostgreSQL server_version_num setting, like 150002.
	Version int `form:"version" binding:"required,min=1"`
}

func (rs *resource) ResolveUtility(c *gin.Context) {
	req := &resolveUtilityReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return
	}
	path, err := rs.tools.ResolveUtility(
		c, c.Param("stype"), c.Param("op"), req.Version,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}
