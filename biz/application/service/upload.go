package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"yoga-master/biz/adaptor"
	"yoga-master/biz/application/dto/yoga"
	"yoga-master/biz/infrastructure/config"
	"yoga-master/biz/infrastructure/consts"
	"yoga-master/biz/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/samber/lo"
)

type IUploadService interface {
	ApplySignedUrl(ctx context.Context, req *yoga.ApplySignedUrlReq) (*yoga.ApplySignedUrlResp, error)
}

type UploadService struct {
	Config  *config.Config
	Storage storage.IObjectStorage
}

var UploadServiceSet = wire.NewSet(
	wire.Struct(new(UploadService), "*"),
	wire.Bind(new(IUploadService), new(*UploadService)),
)

// ApplySignedUrl 申请上传用的加签url, 对象位于 <state>/<email>/<prefix>/ 下
func (s *UploadService) ApplySignedUrl(ctx context.Context, req *yoga.ApplySignedUrlReq) (*yoga.ApplySignedUrlResp, error) {
	userMeta := adaptor.ExtractUserMeta(ctx)
	if userMeta.GetEmail() == "" {
		return nil, consts.ErrNotAuthentication
	}
	if strings.Contains(req.Suffix, "/") {
		return nil, consts.InvalidParams(errors.New("suffix must not contain '/'"))
	}

	prefix, err := uploadPrefix(req.Prefix)
	if err != nil {
		return nil, consts.InvalidParams(err)
	}
	key := fmt.Sprintf("%s/%s/%s%s%s", s.Config.State, userMeta.GetEmail(), prefix, uuid.New().String(), req.Suffix)

	url, err := s.Storage.PresignPut(ctx, key)
	if err != nil {
		if errors.Is(err, consts.ErrUploadNotConfigured) {
			return nil, err
		}
		return nil, consts.ErrApplySignedUrl
	}
	return &yoga.ApplySignedUrlResp{Url: url, Key: key}, nil
}

// uploadPrefix 规范化目录前缀, 不允许 "." 与 ".." 段, 返回值为空或以 "/" 结尾
func uploadPrefix(raw *string) (string, error) {
	if raw == nil {
		return "", nil
	}
	trimmed := strings.Trim(*raw, "/")
	if trimmed == "" {
		return "", nil
	}
	segments := lo.Compact(strings.Split(trimmed, "/"))
	if lo.ContainsBy(segments, func(seg string) bool { return seg == "." || seg == ".." }) {
		return "", errors.New("prefix must not contain '.' or '..' segments")
	}
	return strings.Join(segments, "/") + "/", nil
}
