package config

const SERVER_YML = `
groundwork:
  jwtSecret: "dev-secret-do-not-use-in-prod"
  tokenExpiryDays: 7
  listener:
    port: 3000

mongo:
  uri: "mongodb://localhost:27017"
  database: "groundwork"

google:
  storage:
    bucket: "groundwork-dev"
    customDomain: "cdn.groundwork.local"
  applicationCredentials:
`
