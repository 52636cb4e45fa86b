// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package aliyun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dm20151123 "github.com/alibabacloud-go/dm-20151123/v2/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	credential "github.com/aliyun/credentials-go/credentials"
	"github.com/ecodeclub/storefront/internal/email"
)

type Config struct {
	AccessKeyID     string `yaml:"accessKeyID"`
	AccessKeySecret string `yaml:"accessKeySecret"`
	// AccountName 控制台配置的发信地址，例如 noreply@mailer.example.com
	AccountName string `yaml:"accountName"`
	Endpoint    string `yaml:"endpoint"`
}

// DirectMail 阿里云邮件推送
type DirectMail struct {
	client      *dm20151123.Client
	accountName string
}

func NewDirectMail(cfg Config) (*DirectMail, error) {
	cred, err := credential.NewCredential(&credential.Config{
		Type:            tea.String("access_key"),
		AccessKeyId:     tea.String(cfg.AccessKeyID),
		AccessKeySecret: tea.String(cfg.AccessKeySecret),
	})
	if err != nil {
		return nil, fmt.Errorf("创建阿里云凭据失败: %w", err)
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "dm.aliyuncs.com"
	}
	client, err := dm20151123.NewClient(&openapi.Config{
		Credential: cred,
		Endpoint:   tea.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("创建阿里云邮件推送客户端失败: %w", err)
	}
	return &DirectMail{
		client:      client,
		accountName: cfg.AccountName,
	}, nil
}

func (d *DirectMail) SendMail(ctx context.Context, mail email.Mail) error {
	request := &dm20151123.SingleSendMailAdvanceRequest{
		AccountName:    tea.String(d.accountName),
		FromAlias:      tea.String(mail.From),
		AddressType:    tea.Int32(1), // 1表示随机账号
		ToAddress:      tea.String(mail.To),
		Subject:        tea.String(mail.Subject),
		HtmlBody:       tea.String(string(mail.Body)),
		ReplyToAddress: tea.Bool(false),
	}
	// SDK 不接收 ctx, 只能在调用前检查
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := d.client.SingleSendMailAdvance(request, &util.RuntimeOptions{})
	if err != nil {
		return d.handleError(err)
	}
	return nil
}

func (d *DirectMail) handleError(err error) error {
	var sdkError *tea.SDKError
	if !errors.As(err, &sdkError) {
		return fmt.Errorf("邮件发送失败: %w", err)
	}
	msg := fmt.Sprintf("阿里云邮件推送API错误: %s", tea.StringValue(sdkError.Message))
	if sdkError.Data != nil {
		var data map[string]any
		if json.NewDecoder(strings.NewReader(tea.StringValue(sdkError.Data))).Decode(&data) == nil {
			if recommend, ok := data["Recommend"]; ok {
				msg += fmt.Sprintf(" | 建议: %v", recommend)
			}
			if requestID, ok := data["RequestId"]; ok {
				msg += fmt.Sprintf(" | RequestId: %v", requestID)
			}
		}
	}
	return errors.New(msg)
}
