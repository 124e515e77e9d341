// Copyright (c) 2026 The pgdesk Developers
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/goccy/go-json"
	"github.com/pgdesk/pgdesk/internal/test/dbcontainer"
	"github.com/pgdesk/pgdesk/pkg/adapter/config"
	"github.com/pgdesk/pgdesk/pkg/adapter/config/vers"
	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres"
	"github.com/pgdesk/pgdesk/pkg/adapter/db/postgres/revision"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin"
	"github.com/pgdesk/pgdesk/pkg/adapter/restful/gin/routes"
	"github.com/pgdesk/pgdesk/pkg/core/srvtype"
	"github.com/pgdesk/pgdesk/pkg/core/usecase/upgradeuc"
	"github.com/stretchr/testify/suite"
)

const pgBinDir = "/usr/lib/postgresql/16/bin"

type IntegrationGinTestSuite struct {
	suite.Suite

	Ctx  context.Context
	Pg   *sqltestutil.PostgresContainer
	Pool *postgres.Pool
	Gin  *gin.Engine
}

func TestIntegrationGinTestSuite(t *testing.T) {
	ctx := context.Background()
	pg, pool, dfrs, ok := dbcontainer.New(ctx, 60*time.Second, t)
	for _, f := range dfrs {
		defer f()
	}
	if !ok {
		return // errors are already logged
	}
	suite.Run(t, &IntegrationGinTestSuite{
		Ctx:  ctx,
		Pg:   pg,
		Pool: pool,
	})
}

func (igts *IntegrationGinTestSuite) SetupSuite() {
	uc, err := upgradeuc.New(
		igts.Pool, revision.NewFinder(), revision.List(),
	)
	igts.Require().NoError(err, "creating upgrade use case")
	_, err = uc.Upgrade(igts.Ctx)
	igts.Require().NoError(err, "upgrading database schema")

	c := &config.Config{
		Paths: config.Paths{
			BinDirs: map[string]string{"pg": pgBinDir},
		},
		Vers: vers.Config{
			Versions: vers.Versions{
				Database: revision.Latest(),
				Config:   config.Version,
			},
		},
	}
	err = c.ValidateAndNormalize()
	igts.Require().NoError(err, "validating test configs")

	igts.Gin = gin.New(gin.Logger(), gin.Recovery())
	igts.Require().NotNil(igts.Gin, "cannot instantiate Gin engine")
	err = routes.Register(igts.Ctx, igts.Gin, igts.Pool, c)
	igts.Require().NoError(err, "failed to register Gin routes")
}

func (igts *IntegrationGinTestSuite) sendReqRecvResp(
	method, path string, body io.Reader, res any,
) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, body)
	igts.Require().NoError(err, "cannot create %s request", method)
	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}
	igts.Gin.ServeHTTP(w, req)
	if res != nil {
		b := w.Body.Bytes()
		igts.NoError(json.Unmarshal(b, res), "body is not json")
	}
	return w
}

func (igts *IntegrationGinTestSuite) TestServerTypes() {
	var res []struct {
		Key         string
		Description string
		Priority    int
		Icon        string
	}
	w := igts.sendReqRecvResp(
		http.MethodGet, "/api/pgdesk/v1/server-types", nil, &res,
	)
	igts.Equal(200, w.Code)
	igts.Require().Len(res, 2)
	igts.Equal("ppas", res[0].Key, "larger priority comes first")
	igts.Equal("EDB Advanced Server", res[0].Description)
	igts.Equal("ppas.svg", res[0].Icon)
	igts.Equal("pg", res[1].Key)
	igts.Equal("PostgreSQL", res[1].Description)
	igts.Equal("pg.svg", res[1].Icon)
}

func (igts *IntegrationGinTestSuite) TestFetchBinPaths() {
	var res []srvtype.BinPath
	w := igts.sendReqRecvResp(
		http.MethodGet,
		"/api/pgdesk/v1/preferences/bin-paths/pg",
		nil, &res,
	)
	igts.Equal(200, w.Code)
	igts.Require().Len(res, 1, "pg table must be seeded from configs")
	igts.Equal(pgBinDir, res[0].BinaryPath)
	igts.True(res[0].IsDefault)

	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/pgdesk/v1/preferences/bin-paths/gpdb",
		nil, nil,
	)
	igts.Equal(404, w.Code, "unregistered server type key")
}

func (igts *IntegrationGinTestSuite) TestUpdateBinPaths() {
	table := []srvtype.BinPath{
		{
			Version:          150000,
			NextMajorVersion: 160000,
			BinaryPath:       "/usr/edb/as15/bin",
		},
		{BinaryPath: "/usr/edb/as16/bin", IsDefault: true},
	}
	b, err := json.Marshal(table)
	igts.Require().NoError(err, "marshaling utility path table")
	w := igts.sendReqRecvResp(
		http.MethodPut,
		"/api/pgdesk/v1/preferences/bin-paths/ppas",
		bytes.NewReader(b), nil,
	)
	igts.Equal(200, w.Code)

	var res []srvtype.BinPath
	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/pgdesk/v1/preferences/bin-paths/ppas",
		nil, &res,
	)
	igts.Equal(200, w.Code)
	igts.Equal(table, res, "stored table must be returned intact")

	bad, err := json.Marshal([]srvtype.BinPath{
		{BinaryPath: "/a", IsDefault: true},
		{BinaryPath: "/b", IsDefault: true},
	})
	igts.Require().NoError(err, "marshaling invalid table")
	w = igts.sendReqRecvResp(
		http.MethodPut,
		"/api/pgdesk/v1/preferences/bin-paths/ppas",
		bytes.NewReader(bad), nil,
	)
	igts.Equal(400, w.Code, "two default entries must be rejected")
}

func (igts *IntegrationGinTestSuite) TestResolveUtility() {
	var res struct {
		Path string
	}
	w := igts.sendReqRecvResp(
		http.MethodGet,
		"/api/pgdesk/v1/tools/utility/pg/sql?version=160002",
		nil, &res,
	)
	igts.Equal(200, w.Code)
	igts.Equal(pgBinDir+"/psql", res.Path)

	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/pgdesk/v1/tools/utility/pg/backup?version=90600",
		nil, &res,
	)
	igts.Equal(200, w.Code, "default entry covers any version")
	igts.Equal(pgBinDir+"/pg_dump", res.Path)

	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/pgdesk/v1/tools/utility/pg/sql",
		nil, nil,
	)
	igts.Equal(400, w.Code, "version query parameter is required")

	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/pgdesk/v1/tools/utility/pg/vacuum?version=160002",
		nil, nil,
	)
	igts.Equal(500, w.Code, "unsupported operation name")

	w = igts.sendReqRecvResp(
		http.MethodGet,
		"/api/pgdesk/v1/tools/utility/gpdb/sql?version=160002",
		nil, nil,
	)
	igts.Equal(404, w.Code, "unregistered server type key")
}

func (igts *IntegrationGinTestSuite) TestUsers() {
	b, err := json.Marshal(map[string]string{
		"username": "admin",
		"email":    "admin@example.org",
		"password": "s3cret",
	})
	igts.Require().NoError(err, "marshaling account creation request")
	var created struct {
		ID         int64
		Username   string
		Active     bool
		AuthSource string
	}
	w := igts.sendReqRecvResp(
		http.MethodPost, "/api/pgdesk/v1/users",
		bytes.NewReader(b), &created,
	)
	igts.Equal(201, w.Code)
	igts.Equal("admin", created.Username)
	igts.True(created.Active)
	igts.Equal("internal", created.AuthSource)
	igts.NotZero(created.ID)

	var listed []struct {
		Username string
	}
	w = igts.sendReqRecvResp(
		http.MethodGet, "/api/pgdesk/v1/users", nil, &listed,
	)
	igts.Equal(200, w.Code)
	igts.Require().Len(listed, 1)
	igts.Equal("admin", listed[0].Username)

	missing, err := json.Marshal(map[string]string{
		"username": "nopass",
	})
	igts.Require().NoError(err, "marshaling invalid creation request")
	w = igts.sendReqRecvResp(
		http.MethodPost, "/api/pgdesk/v1/users",
		bytes.NewReader(missing), nil,
	)
	igts.Equal(400, w.Code, "password is required")
}
