// Package vault moves digital assets from the ingress bucket into a WORM
// vault after an integrity check and an Amazon Macie classification job.
//
// Each stage is exposed on its own so a state machine can drive them one
// Lambda invocation at a time; Run chains them for a single invocation.
package vault

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/finlabs/pkg/awsapi"
	"github.com/amirasaad/finlabs/pkg/config"
	"github.com/amirasaad/finlabs/pkg/handler/common"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	macietypes "github.com/aws/aws-sdk-go-v2/service/macie2/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Status values reported back to the caller.
const (
	StatusIntegrityFail = "INTEGRITY_FAIL"
	StatusHasFindings   = "HAS_FINDINGS"
	StatusJobCancelled  = "JOB_CANCELLED"
	StatusVaultCopy     = "VAULT_COPY"
	StatusRunning       = "RUNNING"
	StatusComplete      = "COMPLETE"
	StatusNoFindings    = "NO_FINDINGS"
)

// Steps accepted in Event.Step. An empty step runs the whole pipeline.
const (
	StepCopyToAnalytics = "copy-to-analytics"
	StepIntegrity       = "integrity"
	StepClassify        = "classify"
	StepStatus          = "status"
	StepFindings        = "findings"
	StepCopyToVault     = "copy-to-vault"
)

const (
	maxFindings    = 50
	severityHigh   = "High"
	jobDescription = "Check new data (1x)"
)

var ErrUnknownStep = errors.New("unknown vault step")

// Event is the state machine input.
type Event struct {
	Object string `json:"object"`
	Step   string `json:"step,omitempty"`
	JobID  string `json:"job_id,omitempty"`
}

// Result is the state machine output.
type Result struct {
	Status          string `json:"Status"`
	JobID           string `json:"JobId"`
	AnalyticsBucket string `json:"AnalyticsBucket"`
	Object          string `json:"object,omitempty"`
}

// Handler runs the vault stages against the configured buckets.
type Handler struct {
	s3     awsapi.S3Client
	sts    awsapi.STSClient
	macie  awsapi.MacieClient
	cfg    config.Vault
	logger *slog.Logger
	now    func() time.Time
}

func New(s3Client awsapi.S3Client, stsClient awsapi.STSClient, macie awsapi.MacieClient, cfg config.Vault, logger *slog.Logger) *Handler {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Minute
	}
	return &Handler{
		s3:     s3Client,
		sts:    stsClient,
		macie:  macie,
		cfg:    cfg,
		logger: common.Logger(logger),
		now:    time.Now,
	}
}

// Handle dispatches on e.Step.
func (h *Handler) Handle(ctx context.Context, e Event) (Result, error) {
	if e.Object == "" {
		return Result{}, fmt.Errorf("%w: object", common.ErrMissingSetting)
	}
	if err := common.Require(map[string]string{
		"VAULT_INGRESS_BUCKET":   h.cfg.IngressBucket,
		"VAULT_ANALYTICS_BUCKET": h.cfg.AnalyticsBucket,
		"VAULT_VAULT_BUCKET":     h.cfg.VaultBucket,
	}); err != nil {
		return Result{}, err
	}
	res := h.result(e.Object, StatusRunning, e.JobID)

	switch e.Step {
	case "":
		return h.Run(ctx, e.Object)
	case StepCopyToAnalytics:
		return res, h.CopyToAnalytics(ctx, e.Object)
	case StepIntegrity:
		ok, err := h.CheckIntegrity(ctx, e.Object)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			res.Status = StatusIntegrityFail
		}
		return res, nil
	case StepClassify:
		jobID, err := h.Classify(ctx, e.Object)
		res.JobID = jobID
		return res, err
	case StepStatus:
		status, err := h.JobStatus(ctx, e.JobID)
		if err != nil {
			return Result{}, err
		}
		switch status {
		case macietypes.JobStatusComplete:
			res.Status = StatusComplete
		case macietypes.JobStatusCancelled:
			res.Status = StatusJobCancelled
		}
		return res, nil
	case StepFindings:
		found, err := h.HasHighFindings(ctx, e.JobID)
		if err != nil {
			return Result{}, err
		}
		res.Status = StatusNoFindings
		if found {
			res.Status = StatusHasFindings
		}
		return res, nil
	case StepCopyToVault:
		if err := h.CopyToVault(ctx, e.Object); err != nil {
			return Result{}, err
		}
		res.Status = StatusVaultCopy
		return res, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownStep, e.Step)
	}
}

// Run copies the object to the analytics bucket, verifies it, classifies
// it and, when Macie is satisfied, copies it into the vault.
func (h *Handler) Run(ctx context.Context, object string) (Result, error) {
	log := h.logger.With("handler", "vault.Run", "object", object)
	log.Info("Vault backup started")

	if err := h.CopyToAnalytics(ctx, object); err != nil {
		log.Error("Vault backup failed: analytics copy", "error", err)
		return Result{}, err
	}
	ok, err := h.CheckIntegrity(ctx, object)
	if err != nil {
		log.Error("Vault backup failed: integrity check", "error", err)
		return Result{}, err
	}
	if !ok {
		log.Warn("Aborting backup. File is corrupted")
		return h.result(object, StatusIntegrityFail, "null"), nil
	}

	jobID, err := h.Classify(ctx, object)
	if err != nil {
		log.Error("Vault backup failed: classification job", "error", err)
		return Result{}, err
	}
	log = log.With("job_id", jobID)

	status, err := h.waitForJob(ctx, jobID)
	if err != nil {
		log.Error("Vault backup failed: waiting for job", "error", err)
		return Result{}, err
	}
	if status == macietypes.JobStatusCancelled {
		log.Warn("Aborting backup: Macie job cancelled")
		return h.result(object, StatusJobCancelled, jobID), nil
	}

	found, err := h.HasHighFindings(ctx, jobID)
	if err != nil {
		log.Error("Vault backup failed: findings lookup", "error", err)
		return Result{}, err
	}
	if found {
		log.Warn("Aborting backup: found High priority findings")
		return h.result(object, StatusHasFindings, jobID), nil
	}

	if err := h.CopyToVault(ctx, object); err != nil {
		log.Error("Vault backup failed: vault copy", "error", err)
		return Result{}, err
	}
	log.Info("Vault backup successful")
	return h.result(object, StatusVaultCopy, jobID), nil
}

// CopyToAnalytics copies the object from the ingress to the analytics bucket.
func (h *Handler) CopyToAnalytics(ctx context.Context, object string) error {
	return h.copy(ctx, h.cfg.IngressBucket, h.cfg.AnalyticsBucket, object)
}

// CopyToVault copies the object from the analytics bucket to the vault.
func (h *Handler) CopyToVault(ctx context.Context, object string) error {
	return h.copy(ctx, h.cfg.AnalyticsBucket, h.cfg.VaultBucket, object)
}

func (h *Handler) copy(ctx context.Context, from, to, object string) error {
	_, err := h.s3.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:            aws.String(to),
		Key:               aws.String(object),
		CopySource:        aws.String(from + "/" + url.PathEscape(object)),
		ChecksumAlgorithm: s3types.ChecksumAlgorithmSha256,
	})
	if err != nil {
		return fmt.Errorf("copy %s from %s to %s: %w", object, from, to, err)
	}
	h.logger.Debug("Object copied", "object", object, "from", from, "to", to)
	return nil
}

// CheckIntegrity reports whether the analytics copy has the size and
// content of the ingress original. Full-object SHA-256 checksums are
// compared when S3 has them for both sides; otherwise both objects are
// read and hashed. ETags are never compared since multipart and KMS
// encrypted copies get fresh ones.
func (h *Handler) CheckIntegrity(ctx context.Context, object string) (bool, error) {
	src, err := h.head(ctx, h.cfg.IngressBucket, object)
	if err != nil {
		return false, err
	}
	dst, err := h.head(ctx, h.cfg.AnalyticsBucket, object)
	if err != nil {
		return false, err
	}
	if aws.ToInt64(src.ContentLength) != aws.ToInt64(dst.ContentLength) {
		return false, nil
	}
	srcSum, dstSum := aws.ToString(src.ChecksumSHA256), aws.ToString(dst.ChecksumSHA256)
	if fullObject(srcSum) && fullObject(dstSum) {
		return srcSum == dstSum, nil
	}

	h.logger.Debug("No comparable checksums, hashing objects", "object", object)
	srcDigest, err := h.digest(ctx, h.cfg.IngressBucket, object)
	if err != nil {
		return false, err
	}
	dstDigest, err := h.digest(ctx, h.cfg.AnalyticsBucket, object)
	if err != nil {
		return false, err
	}
	return bytes.Equal(srcDigest, dstDigest), nil
}

// fullObject reports whether sum is a checksum of the whole object rather
// than a composite of part checksums ("<sum>-<parts>").
func fullObject(sum string) bool {
	return sum != "" && !strings.Contains(sum, "-")
}

func (h *Handler) head(ctx context.Context, bucket, object string) (*s3.HeadObjectOutput, error) {
	out, err := h.s3.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket:       aws.String(bucket),
		Key:          aws.String(object),
		ChecksumMode: s3types.ChecksumModeEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("head s3://%s/%s: %w", bucket, object, err)
	}
	return out, nil
}

func (h *Handler) digest(ctx context.Context, bucket, object string) ([]byte, error) {
	out, err := h.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(object),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, object, err)
	}
	defer out.Body.Close()
	sum := sha256.New()
	if _, err := io.Copy(sum, out.Body); err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, object, err)
	}
	return sum.Sum(nil), nil
}

// Classify starts a one-time Macie job over the object in the analytics
// bucket and returns its id.
func (h *Handler) Classify(ctx context.Context, object string) (string, error) {
	identity, err := h.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("get caller identity: %w", err)
	}
	identifiers, err := h.customDataIdentifiers(ctx)
	if err != nil {
		return "", err
	}

	name := "CheckData_" + object + strconv.FormatInt(h.now().Unix(), 10)
	out, err := h.macie.CreateClassificationJob(ctx, &macie2.CreateClassificationJobInput{
		ClientToken:             aws.String(name),
		Name:                    aws.String(name),
		Description:             aws.String(jobDescription),
		JobType:                 macietypes.JobTypeOneTime,
		InitialRun:              aws.Bool(true),
		CustomDataIdentifierIds: identifiers,
		S3JobDefinition: &macietypes.S3JobDefinition{
			BucketDefinitions: []macietypes.S3BucketDefinitionForJob{{
				AccountId: identity.Account,
				Buckets:   []string{h.cfg.AnalyticsBucket},
			}},
			Scoping: &macietypes.Scoping{
				Includes: &macietypes.JobScopingBlock{
					And: []macietypes.JobScopeTerm{{
						SimpleScopeTerm: &macietypes.SimpleScopeTerm{
							Comparator: macietypes.JobComparatorStartsWith,
							Key:        macietypes.ScopeFilterKeyObjectKey,
							Values:     []string{object},
						},
					}},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create classification job: %w", err)
	}
	return aws.ToString(out.JobId), nil
}

func (h *Handler) customDataIdentifiers(ctx context.Context) ([]string, error) {
	var ids []string
	var token *string
	for {
		out, err := h.macie.ListCustomDataIdentifiers(ctx, &macie2.ListCustomDataIdentifiersInput{NextToken: token})
		if err != nil {
			return nil, fmt.Errorf("list custom data identifiers: %w", err)
		}
		for _, item := range out.Items {
			ids = append(ids, aws.ToString(item.Id))
		}
		if aws.ToString(out.NextToken) == "" {
			return ids, nil
		}
		token = out.NextToken
	}
}

// JobStatus returns the Macie job status.
func (h *Handler) JobStatus(ctx context.Context, jobID string) (macietypes.JobStatus, error) {
	if jobID == "" {
		return "", fmt.Errorf("%w: job_id", common.ErrMissingSetting)
	}
	out, err := h.macie.DescribeClassificationJob(ctx, &macie2.DescribeClassificationJobInput{
		JobId: aws.String(jobID),
	})
	if err != nil {
		return "", fmt.Errorf("describe classification job %s: %w", jobID, err)
	}
	return out.JobStatus, nil
}

// waitForJob polls until the job is complete or cancelled.
func (h *Handler) waitForJob(ctx context.Context, jobID string) (macietypes.JobStatus, error) {
	ticker := time.NewTicker(h.cfg.PollInterval)
	defer ticker.Stop()
	for {
		status, err := h.JobStatus(ctx, jobID)
		if err != nil {
			return "", err
		}
		if status == macietypes.JobStatusComplete || status == macietypes.JobStatusCancelled {
			return status, nil
		}
		h.logger.Info("Still running", "job_id", jobID, "status", status, "sleep", h.cfg.PollInterval)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// HasHighFindings reports whether the job produced any High severity finding.
func (h *Handler) HasHighFindings(ctx context.Context, jobID string) (bool, error) {
	if jobID == "" {
		return false, fmt.Errorf("%w: job_id", common.ErrMissingSetting)
	}
	list, err := h.macie.ListFindings(ctx, &macie2.ListFindingsInput{
		FindingCriteria: &macietypes.FindingCriteria{
			Criterion: map[string]macietypes.CriterionAdditionalProperties{
				"classificationDetails.jobId": {Eq: []string{jobID}},
			},
		},
		MaxResults: aws.Int32(maxFindings),
	})
	if err != nil {
		return false, fmt.Errorf("list findings for %s: %w", jobID, err)
	}
	if len(list.FindingIds) == 0 {
		return false, nil
	}
	out, err := h.macie.GetFindings(ctx, &macie2.GetFindingsInput{FindingIds: list.FindingIds})
	if err != nil {
		return false, fmt.Errorf("get findings for %s: %w", jobID, err)
	}
	for _, f := range out.Findings {
		if f.Severity != nil && string(f.Severity.Description) == severityHigh {
			return true, nil
		}
	}
	return false, nil
}

func (h *Handler) result(object, status, jobID string) Result {
	return Result{
		Status:          status,
		JobID:           jobID,
		AnalyticsBucket: h.cfg.AnalyticsBucket,
		Object:          object,
	}
}
