// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package typesrs realizes the server types resource, exposing the
// registered server types with their UI presentation metadata.
package typesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
)

type resource struct {
	registry *srvtype.Registry
}

// Register instantiates a resource adapting the server types registry
// with the relevant REST APIs including:
//  1. GET request to /api/pgdesk/v1/server-types
//     in order to list the registered server types.
func Register(r *gin.RouterGroup, reg *srvtype.Registry) {
	rs := &resource{registry: reg}
	r.GET("server-types", rs.ListServerTypes)
}

// serServerType is the serialization form of one server type entry.
type serServerType struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
	Icon        string `json:"icon"`
}

func (rs *resource) ListServerTypes(c *gin.Context) {
	types := rs.registry.Types()
	out := make([]serServerType, len(types))
	for i, st := range types {
		out[i] = serServerType{
			Key:         st.Key,
			Description: st.Description,
			Priority:    st.Priority,
			Icon:        st.Icon(),
		}
	}
	c.JSON(http.StatusOK, out)
}
