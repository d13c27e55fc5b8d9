package instance

import (
	"os"

	"github.com/qitaat/seller-dashboard-backend/pkg/env"
)

// EnvWorkerID overrides the identifier reported by GetID.
const EnvWorkerID = "SELLERDASH_WORKER_ID"

// GetID identifies this process among worker replicas. It falls back to the
// hostname, which is the pod name on Cloud Run and Kubernetes.
func GetID() string {
	if id := env.Get(EnvWorkerID, ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "worker-0"
}
