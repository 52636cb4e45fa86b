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

package ioc

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type namedJob struct {
	name string
	err  error
	runs int
}

func (j *namedJob) Name() string {
	return j.name
}

func (j *namedJob) Run(_ context.Context) error {
	j.runs++
	return j.err
}

func TestFuncJobWrapper(t *testing.T) {
	ok := &namedJob{name: "test_ok_job"}
	assert.NoError(t, funcJobWrapper(ok)(context.Background()))
	assert.Equal(t, 1, ok.runs)

	mockErr := errors.New("mock error")
	failed := &namedJob{name: "test_failed_job", err: mockErr}
	assert.ErrorIs(t, funcJobWrapper(failed)(context.Background()), mockErr)

	// 每个 job 和执行结果的组合各一条
	assert.Equal(t, 2, testutil.CollectAndCount(cronJobDuration))
}
