package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finnbusse/grabbe-cms/internal/audit"
	"github.com/finnbusse/grabbe-cms/internal/auth"
	"github.com/finnbusse/grabbe-cms/internal/domain/setting"
	"github.com/finnbusse/grabbe-cms/internal/rbac"
	"github.com/finnbusse/grabbe-cms/internal/repository"
)

type SettingHandler struct {
	settingRepo repository.SettingRepository
	auditLogger *audit.Logger
}

func NewSettingHandler(settingRepo repository.SettingRepository, auditLogger *audit.Logger) *SettingHandler {
	return &SettingHandler{
		settingRepo: settingRepo,
		auditLogger: auditLogger,
	}
}

// sectionAllowed maps each settings section onto its own boolean in the
// permission set; access to one section says nothing about the others.
func sectionAllowed(perms rbac.PermissionSet, section setting.Section) bool {
	switch section {
	case setting.SectionBasic:
		return perms.Settings.Basic
	case setting.SectionAdvanced:
		return perms.Settings.Advanced
	case setting.SectionSEO:
		return perms.Settings.SEO
	default:
		return false
	}
}

func (h *SettingHandler) ListSection(c echo.Context) error {
	section := setting.Section(c.Param(paramSection))
	if !section.Valid() {
		return respondError(c, http.StatusBadRequest, msgInvalidSection)
	}

	if !sectionAllowed(auth.GetPermissions(c), section) {
		return respondError(c, http.StatusForbidden, fmt.Sprintf("missing capability: settings.%s", section))
	}

	settings, err := h.settingRepo.ListBySection(c.Request().Context(), section)
	if err != nil {
		c.Logger().Errorf("Failed to list %s settings: %v", section, err)
		return respondError(c, http.StatusInternalServerError, msgListSettingsFail)
	}

	return c.JSON(http.StatusOK, settings)
}

type SaveSettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (h *SettingHandler) SaveSetting(c echo.Context) error {
	section := setting.Section(c.Param(paramSection))
	if !section.Valid() {
		return respondError(c, http.StatusBadRequest, msgInvalidSection)
	}

	if !sectionAllowed(auth.GetPermissions(c), section) {
		return respondError(c, http.StatusForbidden, fmt.Sprintf("missing capability: settings.%s", section))
	}

	var req SaveSettingRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Key = strings.TrimSpace(req.Key)
	if req.Key == "" {
		return respondError(c, http.StatusBadRequest, msgSettingKeyRequired)
	}

	s := setting.Setting{
		Key:       req.Key,
		Section:   section,
		Value:     req.Value,
		UpdatedAt: time.Now(),
	}

	if err := h.settingRepo.Upsert(c.Request().Context(), s); err != nil {
		c.Logger().Errorf("Failed to save setting %s/%s: %v", section, req.Key, err)
		return respondError(c, http.StatusInternalServerError, msgSaveSettingFail)
	}

	if h.auditLogger != nil {
		h.auditLogger.LogFromContext(c, audit.ResourceSetting, nil, audit.ActionUpdate, audit.StatusSuccess, map[string]any{
			"section": string(section),
			"key":     req.Key,
		})
	}

	return respondMessage(c, http.StatusOK, msgSettingSaved)
}
