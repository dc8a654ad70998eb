package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes an admin password. Costs outside the range
// bcrypt accepts are replaced with the library default, so a misconfigured
// AUTH_BCRYPT_COST cannot weaken or break registration.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword checks a plaintext password against a stored hash. A nil
// return means they match.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
