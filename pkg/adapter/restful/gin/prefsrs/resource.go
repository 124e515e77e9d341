// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package prefsrs realizes the preferences resource, allowing the
// per server type utility path tables to be fetched and replaced
// through the REST APIs by delegation to the preferences use cases.
package prefsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin/serdser"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/prefsuc"
)

type resource struct {
	prefs *prefsuc.UseCase
}

// Register instantiates a resource adapting the preferences use case
// instance with the relevant REST APIs including:
//  1. GET request to /api/pgdesk/v1/preferences/bin-paths/:stype
//     in order to fetch the utility path table of one server type,
//  2. PUT request to /api/pgdesk/v1/preferences/bin-paths/:stype
//     in order to replace the utility path table of one server type.
func Register(r *gin.RouterGroup, prefs *prefsuc.UseCase) {
	rs := &resource{prefs: prefs}
	r.GET("preferences/bin-paths/:stype", rs.FetchBinPaths)
	r.PUT("preferences/bin-paths/:stype", rs.UpdateBinPaths)
}

func (rs *resource) FetchBinPaths(c *gin.Context) {
	table, err := rs.prefs.FetchBinPaths(c, c.Param("stype"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

func (rs *resource) UpdateBinPaths(c *gin.Context) {
	var table []srvtype.BinPath
	if ok := serdser.Bind(c, &table, binding.JSON); !ok {
		return
	}
	err := rs.prefs.UpdateBinPaths(c, c.Param("stype"), table)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}
