package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhyrak/go-facultyload/internal/audit"
	"github.com/rhyrak/go-facultyload/internal/csvio"
	"github.com/rhyrak/go-facultyload/internal/loads"
	"github.com/rhyrak/go-facultyload/pkg/model"
)

const csvContentType = "text/csv; charset=utf-8"

// FindRequest looks up a section either by label and term or by a clicked
// loads table cell and its bucket.
type FindRequest struct {
	Schedule model.Schedule `json:"schedule"`
	Label    string         `json:"label"`
	Term     model.Term     `json:"term"`
	Cell     string         `json:"cell"`
	Bucket   model.Bucket   `json:"bucket"`
}

// AddNonTeachingRequest adds a non-teaching load to a schedule.
type AddNonTeachingRequest struct {
	Schedule model.Schedule             `json:"schedule"`
	Load     model.NonTeachingLoadInput `json:"load"`
}

func (s *Server) bindSchedule(c *gin.Context) (*model.Schedule, bool) {
	var schedule model.Schedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		s.badRequest(c, err)
		return nil, false
	}
	return &schedule, true
}

func (s *Server) badRequest(c *gin.Context, err error) {
	s.log.Warnf("request %s: %v", c.GetString("request_id"), err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) handlePostLoads(ctx *gin.Context) {
	schedule, ok := s.bindSchedule(ctx)
	if !ok {
		return
	}
	rows := s.agg.Aggregate(schedule)
	if ctx.Query("format") == "csv" {
		var buf bytes.Buffer
		if err := csvio.WriteLoads(&buf, rows); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		s.attachment(ctx, s.cfg.Export.LoadsFile, buf.String())
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"rows": rows,
	})
}

func (s *Server) handleExportTeaching(ctx *gin.Context) {
	schedule, ok := s.bindSchedule(ctx)
	if !ok {
		return
	}
	s.attachment(ctx, s.cfg.Export.TeachingFile, s.exporter.Teaching(schedule))
}

func (s *Server) handleExportNonTeaching(ctx *gin.Context) {
	schedule, ok := s.bindSchedule(ctx)
	if !ok {
		return
	}
	s.attachment(ctx, s.cfg.Export.NonTeachingFile, s.exporter.NonTeaching(schedule))
}

func (s *Server) attachment(ctx *gin.Context, name, body string) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	ctx.Data(http.StatusOK, csvContentType, []byte(body))
}

func (s *Server) handleValidate(ctx *gin.Context) {
	schedule, ok := s.bindSchedule(ctx)
	if !ok {
		return
	}
	valid, report := audit.Validate(schedule)
	ctx.JSON(http.StatusOK, gin.H{
		"valid":  valid,
		"report": report,
	})
}

func (s *Server) handleFindSection(ctx *gin.Context) {
	var req FindRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.badRequest(ctx, err)
		return
	}
	var (
		found model.CourseSectionMeeting
		err   error
	)
	if req.Bucket != "" {
		found, err = loads.FindCellSection(&req.Schedule, req.Cell, req.Bucket)
	} else {
		found, err = loads.FindSection(&req.Schedule, req.Label, req.Term)
	}
	if errors.Is(err, loads.ErrSectionNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, found)
}

func (s *Server) handleAddNonTeaching(ctx *gin.Context) {
	var req AddNonTeachingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.badRequest(ctx, err)
		return
	}
	if err := loads.ValidateForm(req.Load); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, loads.AddNonTeachingLoad(&req.Schedule, req.Load))
}

func (s *Server) handleNonTeachingForm(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		s.badRequest(ctx, err)
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		ctx.JSON(http.StatusOK, loads.SectionToForm(nil))
		return
	}
	var data model.CourseSectionMeeting
	if err := json.Unmarshal(body, &data); err != nil {
		s.badRequest(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, loads.SectionToForm(&data))
}
