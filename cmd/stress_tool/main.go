package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Config
const (
	BaseURL    = "http://localhost:8080"
	TotalUsers = 500 // 模拟 500 个用户并发点赞同一个帖子
)

var httpClient *http.Client

func init() {
	// 优化 HTTP Client 配置
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

type signinResult struct {
	Data struct {
		Token  string `json:"token"`
		UserID string `json:"userId"`
	} `json:"data"`
}

type createPostResult struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type likeResult struct {
	Code int `json:"code"`
	Data struct {
		LikeCount          int  `json:"likeCount"`
		LikedByCurrentUser bool `json:"likedByCurrentUser"`
	} `json:"data"`
}

func main() {
	// 1. 注册并登录压测用户
	fmt.Printf("准备 %d 个压测用户...\n", TotalUsers)
	tokens := make([]string, 0, TotalUsers)
	for i := 0; i < TotalUsers; i++ {
		token, err := signupAndSignin(i)
		if err != nil {
			fmt.Printf("用户 %d 准备失败: %v\n", i, err)
			return
		}
		tokens = append(tokens, token)
	}

	// 2. 第一个用户发一个帖子
	postID, err := createPost(tokens[0])
	if err != nil {
		fmt.Printf("创建帖子失败: %v\n", err)
		return
	}
	fmt.Printf("开始压测：%d 个用户并发点赞帖子 %s...\n", TotalUsers, postID)

	// 3. 并发点赞
	var wg sync.WaitGroup
	successCount := 0
	failCount := 0
	var mu sync.Mutex

	start := time.Now()

	for _, token := range tokens {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			if toggleLike(postID, token) {
				mu.Lock()
				successCount++
				mu.Unlock()
			} else {
				mu.Lock()
				failCount++
				mu.Unlock()
			}
		}(token)
	}

	wg.Wait()
	duration := time.Since(start)
	qps := float64(TotalUsers) / duration.Seconds()

	// 4. 最终计数
	finalCount := getLikeCount(postID, tokens[0])

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", duration)
	fmt.Printf("总请求数: %d\n", TotalUsers)
	fmt.Printf("QPS: %.2f\n", qps)
	fmt.Printf("点赞成功: %d, 失败: %d\n", successCount, failCount)
	fmt.Printf("最终 likeCount: %d (预期: %d，点赞列表无并发控制，差值即竞争丢失的写)\n", finalCount, successCount)
	fmt.Println("--------------------------------------------------")
}

func signupAndSignin(i int) (string, error) {
	username := fmt.Sprintf("stress_user_%d_%d", time.Now().Unix(), i)
	payload := map[string]interface{}{
		"username": username,
		"email":    username + "@stress.local",
		"password": "stress123",
	}
	body, _ := json.Marshal(payload)
	resp, err := httpClient.Post(BaseURL+"/auth/signup", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	signin := map[string]interface{}{"username": username, "password": "stress123"}
	body, _ = json.Marshal(signin)
	resp, err = httpClient.Post(BaseURL+"/auth/signin", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var result signinResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.Data.Token == "" {
		return "", fmt.Errorf("signin failed: %s", string(respBody))
	}
	return result.Data.Token, nil
}

func createPost(token string) (string, error) {
	payload := map[string]interface{}{
		"title":       "压测专用帖",
		"description": "like toggle stress test",
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, BaseURL+"/posts", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var result createPostResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.Data.ID == "" {
		return "", fmt.Errorf("create post failed: %s", string(respBody))
	}
	return result.Data.ID, nil
}

func toggleLike(postID, token string) bool {
	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/posts/%s/like", BaseURL, postID), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != 200 {
		return false
	}

	var result likeResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return false
	}
	return result.Code == 0 && result.Data.LikedByCurrentUser
}

func getLikeCount(postID, token string) int {
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/posts/%s", BaseURL, postID), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := httpClient.Do(req)
	if err != nil {
		return -1
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var result struct {
		Data struct {
			LikeCount int `json:"likeCount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return -1
	}
	return result.Data.LikeCount
}
