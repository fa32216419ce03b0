package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davidc-dev/device-workflow/pkg/argocd"
	"github.com/davidc-dev/device-workflow/pkg/chart"
	"github.com/davidc-dev/device-workflow/pkg/config"
	"github.com/davidc-dev/device-workflow/pkg/deploy"
	"github.com/davidc-dev/device-workflow/pkg/provision"
	"github.com/davidc-dev/device-workflow/pkg/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

type provisionResponse struct {
	Status   string `json:"status"`
	RepoName string `json:"repo_name"`
	RepoURL  string `json:"repo_url"`
}

type listAppsResponse struct {
	Apps []types.DeviceRecord `json:"apps"`
}

type syncResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// errorStatus maps a workflow error onto an HTTP status code. Validation
// failures are the caller's fault; everything else is an upstream problem.
func errorStatus(err error) int {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, deploy.ErrNoController) {
		return http.StatusServiceUnavailable
	}
	if argocd.IsRejected(err) || argocd.IsTransport(err) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (s *Server) handleCreateDeviceRepo(w http.ResponseWriter, r *http.Request) {
	if s.provisioner == nil {
		writeError(w, http.StatusServiceUnavailable, "repository provisioning is not configured")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	clusterFQDN := r.PostFormValue("cluster_fqdn")
	if clusterFQDN == "" {
		clusterFQDN = s.opts.AppsDomain
	}

	req := provision.Request{
		Identity: types.DeviceIdentity{
			Name: r.PostFormValue("device_name"),
			ID:   r.PostFormValue("device_id"),
		},
		ClusterFQDN: clusterFQDN,
		Chart: chart.Request{
			RepoURL: r.PostFormValue("helm_repo_url"),
			Name:    r.PostFormValue("helm_chart_name"),
			Version: r.PostFormValue("helm_chart_version"),
		},
		ValuesYAML: r.PostFormValue("helm_values_yaml"),
	}
	if req.Chart.RepoURL == "" {
		writeError(w, http.StatusBadRequest, "helm_repo_url is required")
		return
	}

	result, err := s.provisioner.Provision(r.Context(), req)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, provisionResponse{
		Status:   "ok",
		RepoName: result.RepoName,
		RepoURL:  result.RepoURL,
	})
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	if s.deployer == nil {
		writeError(w, http.StatusServiceUnavailable, "deployment is not configured")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	req := deploy.Request{
		Identity: types.DeviceIdentity{
			Name: r.PostFormValue("device_name"),
			ID:   r.PostFormValue("device_id"),
		},
		RepoURL:              r.PostFormValue("repo_url"),
		DestinationServer:    r.PostFormValue("destination_server"),
		DestinationNamespace: r.PostFormValue("destination_namespace"),
		YAMLOnly:             !config.Truthy(r.PostFormValue("use_argocd_api")),
	}

	result, err := s.deployer.Deploy(r.Context(), req)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListApps(w http.ResponseWriter, r *http.Request) {
	if s.inventory == nil {
		writeError(w, http.StatusServiceUnavailable, "inventory is not configured")
		return
	}

	records, err := s.inventory.List(r.Context())
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, listAppsResponse{Apps: records})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if s.syncer == nil {
		writeError(w, http.StatusServiceUnavailable, "sync is not configured")
		return
	}
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed form body")
		return
	}

	appName := r.PostFormValue("app_name")
	if appName == "" {
		writeError(w, http.StatusBadRequest, "app_name is required")
		return
	}

	if _, err := s.syncer.SyncApplication(r.Context(), appName); err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, syncResponse{Status: "ok"})
}
