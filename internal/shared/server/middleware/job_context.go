package middleware

import "github.com/gin-gonic/gin"

const jobIDKey = "jobId"

// JobContext copies the job route parameter into the context keys so
// request logging reports which posting a call touched, no matter which
// handler served it. Routes without the parameter pass through untouched.
func JobContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if jobID := c.Param("jobId"); jobID != "" {
			c.Set(jobIDKey, jobID)
		}
		c.Next()
	}
}
