package job

import (
	"Portfolio/internal/pkg/minio"
	"context"
	log "log/slog"
	"sort"
	"time"
)

// BucketLister 列出桶内对象
type BucketLister interface {
	List(ctx context.Context) ([]string, error)
	Bucket() string
}

// AssetReferrer 给出某张表引用的全部图片地址
type AssetReferrer interface {
	ListAssetURLs(ctx context.Context) ([]string, error)
}

// OrphanAssetJob 统计桶内没有被任何帖子或项目引用的对象，只报告不删除
type OrphanAssetJob struct {
	bucket    BucketLister
	referrers []AssetReferrer
	timeout   time.Duration
}

func NewOrphanAssetJob(bucket BucketLister, referrers ...AssetReferrer) *OrphanAssetJob {
	return &OrphanAssetJob{bucket: bucket, referrers: referrers, timeout: 5 * time.Minute}
}

func (s *OrphanAssetJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	log.Info("start orphan asset audit")
	orphans, err := s.Audit(ctx)
	if err != nil {
		log.Error("orphan asset audit failed", "err", err)
		return
	}
	if len(orphans) == 0 {
		log.Info("orphan asset audit finished, nothing unreferenced")
		return
	}

	sample := orphans
	if len(sample) > 20 {
		sample = sample[:20]
	}
	log.Warn("orphan asset audit finished", "bucket", s.bucket.Bucket(), "orphan_count", len(orphans), "sample", sample)
}

// Audit 返回未被引用的对象 key，按字典序排列
func (s *OrphanAssetJob) Audit(ctx context.Context) ([]string, error) {
	referenced := make(map[string]struct{})
	for _, r := range s.referrers {
		urls, err := r.ListAssetURLs(ctx)
		if err != nil {
			return nil, err
		}
		for _, url := range urls {
			if key, ok := minio.KeyFromURL(url, s.bucket.Bucket()); ok {
				referenced[key] = struct{}{}
			}
		}
	}

	keys, err := s.bucket.List(ctx)
	if err != nil {
		return nil, err
	}
	var orphans []string
	for _, key := range keys {
		if _, ok := referenced[key]; !ok {
			orphans = append(orphans, key)
		}
	}
	sort.Strings(orphans)
	return orphans, nil
}
