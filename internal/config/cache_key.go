package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ClassListKey returns the cache key for the full class listing
func (r *CacheKeyStruct) ClassListKey() string {
	return "shapeshed:classes:all"
}

// InstructorListKey returns the cache key for the full instructor listing
func (r *CacheKeyStruct) InstructorListKey() string {
	return "shapeshed:instructors:all"
}

var CacheKey = NewCacheKeyStruct()
